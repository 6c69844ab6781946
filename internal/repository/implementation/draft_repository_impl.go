package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/pkg/booklet"
)

// Drafts persist as the same JSON envelope the renderer receives, under the
// scheme's store key prefixed with the owner. No TTL: a draft lives until it
// is reset or replaced.
type DraftRepositoryImpl struct {
	rdb *redis.Client
}

func NewDraftRepository(rdb *redis.Client) contract.DraftRepository {
	return &DraftRepositoryImpl{rdb: rdb}
}

func (r *DraftRepositoryImpl) Get(ctx context.Context, userID uuid.UUID, scheme string) (*booklet.Draft, error) {
	key, err := booklet.StoreKey(userID.String(), scheme)
	if err != nil {
		return nil, err
	}
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	env, err := booklet.ParseEnvelope(scheme, raw)
	if err != nil {
		return nil, fmt.Errorf("parse stored draft: %w", err)
	}
	return env.Draft, nil
}

func (r *DraftRepositoryImpl) Save(ctx context.Context, userID uuid.UUID, draft *booklet.Draft) error {
	key, err := booklet.StoreKey(userID.String(), draft.Scheme)
	if err != nil {
		return err
	}
	env := &booklet.Envelope{Scheme: draft.Scheme, UserData: json.RawMessage("{}"), Draft: draft}
	raw, err := env.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := r.rdb.Set(ctx, key, raw, time.Duration(0)).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *DraftRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, scheme string) error {
	key, err := booklet.StoreKey(userID.String(), scheme)
	if err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
