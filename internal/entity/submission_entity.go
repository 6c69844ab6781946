// FILE: internal/entity/submission_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the audit record of one successful booklet render: the exact
// envelope sent to the renderer and when it happened. The live draft is
// deliberately not part of it.
type Submission struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Scheme       string
	Envelope     string
	DocumentSize int
	CreatedAt    time.Time
}
