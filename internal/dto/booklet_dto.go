// FILE: internal/dto/booklet_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"loan-booklet-be/pkg/booklet"
)

type DraftResponse struct {
	Scheme    string                      `json:"scheme"`
	Step      int                         `json:"step"`
	Steps     []string                    `json:"steps"`
	AllowJump bool                        `json:"allow_jump"`
	Scalars   map[string]string           `json:"scalars"`
	Lists     map[string][]booklet.Record `json:"lists"`
	Derived   []string                    `json:"derived"`
}

type UpdateFieldRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// Warning is set when an input guard rewrote the submitted value.
type UpdateFieldResponse struct {
	Draft   *DraftResponse `json:"draft"`
	Warning string         `json:"warning,omitempty"`
}

type UpdateRecordRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type StepRequest struct {
	Step int `json:"step" validate:"required,min=1"`
}

type StepResponse struct {
	Step   int      `json:"step"`
	Errors []string `json:"errors,omitempty"`
}

type ValidateDraftRequest struct {
	Scope string `json:"scope" validate:"required,oneof=step final"`
	Step  int    `json:"step" validate:"omitempty,min=1"`
}

type ValidateDraftResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type SubmitResponse struct {
	SubmissionId uuid.UUID `json:"submission_id"`
	Document     string    `json:"document"`
}

type SubmissionHistoryItem struct {
	Id           uuid.UUID `json:"id"`
	Scheme       string    `json:"scheme"`
	DocumentSize int       `json:"document_size"`
	CreatedAt    time.Time `json:"created_at"`
}

type SchemeResponse struct {
	Code      string   `json:"code"`
	Title     string   `json:"title"`
	Steps     []string `json:"steps"`
	AllowJump bool     `json:"allow_jump"`
	Lists     []string `json:"lists"`
}
