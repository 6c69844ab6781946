// FILE: internal/dto/user_dto.go
package dto

import (
	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Mobile string    `json:"mobile"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Status string    `json:"status"`

	BranchName    string `json:"brName"`
	BranchPlace   string `json:"brPlace"`
	BranchCode    string `json:"brCode"`
	BranchABM     string `json:"brAbm"`
	BranchManager string `json:"brManager"`
	BMDesignation string `json:"bmDesignation"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	BranchName    string `json:"brName"`
	BranchPlace   string `json:"brPlace"`
	BranchCode    string `json:"brCode"`
	BranchABM     string `json:"brAbm"`
	BranchManager string `json:"brManager"`
	BMDesignation string `json:"bmDesignation"`
}
