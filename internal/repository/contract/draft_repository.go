package contract

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"loan-booklet-be/pkg/booklet"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository persists one working draft per user and scheme.
type DraftRepository interface {
	Get(ctx context.Context, userID uuid.UUID, scheme string) (*booklet.Draft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *booklet.Draft) error
	Delete(ctx context.Context, userID uuid.UUID, scheme string) error
}
