package bootstrap

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/internal/repository/memory"
	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/schema"
)

func TestDraftRepositoryFallsBackWithoutRedis(t *testing.T) {
	// Nothing listens on port 1; the container must degrade to the
	// in-memory store instead of wiring a dead Redis client.
	repo := newDraftRepository("redis://127.0.0.1:1")

	_, ok := repo.(*memory.DraftRepository)
	require.True(t, ok, "expected the in-memory draft store, got %T", repo)

	// The degraded store still serves the full draft lifecycle.
	ctx := context.Background()
	userId := uuid.New()
	sc, _ := schema.Get(booklet.SchemeLOD)

	_, err := repo.Get(ctx, userId, booklet.SchemeLOD)
	assert.ErrorIs(t, err, contract.ErrDraftNotFound)

	require.NoError(t, repo.Save(ctx, userId, sc.Seed()))
	d, err := repo.Get(ctx, userId, booklet.SchemeLOD)
	require.NoError(t, err)
	assert.Equal(t, "Overdraft", d.Scalars["loanType"])
}
