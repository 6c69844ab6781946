// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is a branch officer drafting loan booklets. The branch block is
// stamped into every rendered booklet, so submission requires it filled.
type User struct {
	Id     uuid.UUID
	Email  string
	Mobile string
	Name   string
	Role   UserRole
	Status UserStatus

	BranchName    string
	BranchPlace   string
	BranchCode    string
	BranchABM     string
	BranchManager string
	BMDesignation string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileComplete reports whether the branch block is filled in enough to
// stamp a booklet.
func (u *User) ProfileComplete() bool {
	return u.BranchName != "" && u.BranchCode != "" && u.BranchManager != ""
}
