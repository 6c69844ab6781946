package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/pkg/booklet"
)

// DraftRepository is the in-memory counterpart of the redis-backed store,
// used in tests and local development without a redis instance.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

var _ contract.DraftRepository = &DraftRepository{}

func (r *DraftRepository) Get(_ context.Context, userID uuid.UUID, scheme string) (*booklet.Draft, error) {
	key, err := booklet.StoreKey(userID.String(), scheme)
	if err != nil {
		return nil, err
	}
	if x, found := r.cache.Get(key); found {
		return x.(*booklet.Draft).Clone(), nil
	}
	return nil, contract.ErrDraftNotFound
}

func (r *DraftRepository) Save(_ context.Context, userID uuid.UUID, draft *booklet.Draft) error {
	key, err := booklet.StoreKey(userID.String(), draft.Scheme)
	if err != nil {
		return err
	}
	r.cache.Set(key, draft.Clone(), cache.NoExpiration)
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, userID uuid.UUID, scheme string) error {
	key, err := booklet.StoreKey(userID.String(), scheme)
	if err != nil {
		return err
	}
	r.cache.Delete(key)
	return nil
}
