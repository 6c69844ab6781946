package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// UserOwnedBy scopes a query to one owner's rows.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
