package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"loan-booklet-be/internal/repository/contract"
)

type StepSessionRepository struct {
	cache *cache.Cache
}

func NewStepSessionRepository() *StepSessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &StepSessionRepository{
		cache: c,
	}
}

var _ contract.StepSessionRepository = &StepSessionRepository{}

func stepKey(userID uuid.UUID, scheme string) string {
	return fmt.Sprintf("%s:%s:step", userID, scheme)
}

func (r *StepSessionRepository) Get(userID uuid.UUID, scheme string) (int, bool) {
	if x, found := r.cache.Get(stepKey(userID, scheme)); found {
		return x.(int), true
	}
	return 0, false
}

func (r *StepSessionRepository) Save(userID uuid.UUID, scheme string, step int) {
	r.cache.Set(stepKey(userID, scheme), step, cache.DefaultExpiration)
}

func (r *StepSessionRepository) Delete(userID uuid.UUID, scheme string) {
	r.cache.Delete(stepKey(userID, scheme))
}
