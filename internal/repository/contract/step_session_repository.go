package contract

import "github.com/google/uuid"

// StepSessionRepository tracks which step a user is on per scheme. Step
// position is session state, not draft state: it lives in memory only and a
// restart drops everyone back to step one.
type StepSessionRepository interface {
	Get(userID uuid.UUID, scheme string) (int, bool)
	Save(userID uuid.UUID, scheme string, step int)
	Delete(userID uuid.UUID, scheme string)
}
