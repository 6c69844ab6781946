package model

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index:idx_submissions_user_scheme"`
	Scheme       string    `gorm:"type:varchar(20);not null;index:idx_submissions_user_scheme"`
	Envelope     string    `gorm:"type:jsonb;not null"`
	DocumentSize int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}
