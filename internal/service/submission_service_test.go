package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/internal/repository/memory"
	"loan-booklet-be/internal/repository/specification"
	"loan-booklet-be/internal/repository/unitofwork"
	"loan-booklet-be/pkg/booklet"
)

// --- in-memory unit of work ---

type fakeUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.users[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeSubmissionRepository struct {
	rows []*entity.Submission
}

func (r *fakeSubmissionRepository) Create(_ context.Context, submission *entity.Submission) error {
	submission.Id = uuid.New()
	submission.CreatedAt = time.Now()
	r.rows = append(r.rows, submission)
	return nil
}

func (r *fakeSubmissionRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Submission, error) {
	var userID uuid.UUID
	var scheme string
	limit := -1
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			userID = s.UserID
		case specification.ByScheme:
			scheme = s.Scheme
		case specification.Pagination:
			limit = s.Limit
		}
	}
	var out []*entity.Submission
	for _, row := range r.rows {
		if userID != uuid.Nil && row.UserId != userID {
			continue
		}
		if scheme != "" && row.Scheme != scheme {
			continue
		}
		if limit >= 0 && len(out) == limit {
			break
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeSubmissionRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakeUnitOfWork struct {
	users       contract.UserRepository
	submissions contract.SubmissionRepository
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error                       { return nil }
func (u *fakeUnitOfWork) Commit() error                                       { return nil }
func (u *fakeUnitOfWork) Rollback() error                                     { return nil }
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository             { return u.users }
func (u *fakeUnitOfWork) SubmissionRepository() contract.SubmissionRepository { return u.submissions }

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubRenderer struct {
	document string
	err      error
	calls    int
}

func (r *stubRenderer) Render(_ context.Context, _ *booklet.Envelope) (string, error) {
	r.calls++
	return r.document, r.err
}

// --- fixtures ---

type submissionFixture struct {
	svc         *submissionService
	drafts      contract.DraftRepository
	users       *fakeUserRepository
	submissions *fakeSubmissionRepository
	renderer    *stubRenderer
	locks       *SubmissionLocks
	userId      uuid.UUID
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	drafts := memory.NewDraftRepository()
	users := &fakeUserRepository{users: map[uuid.UUID]*entity.User{}}
	submissions := &fakeSubmissionRepository{}
	rend := &stubRenderer{document: "<html>booklet</html>"}
	locks := NewSubmissionLocks()

	svc := NewSubmissionService(
		drafts,
		&fakeRepositoryFactory{uow: &fakeUnitOfWork{users: users, submissions: submissions}},
		rend,
		locks,
		nopLogger{},
	).(*submissionService)
	svc.now = func() time.Time { return fixedNow }

	userId := uuid.New()
	users.users[userId] = &entity.User{
		Id:            userId,
		Email:         "bm@bank.example",
		Mobile:        "9876543210",
		Name:          "Branch Manager",
		BranchName:    "Rampur Branch",
		BranchPlace:   "Rampur",
		BranchCode:    "RB042",
		BranchABM:     "A. Sharma",
		BranchManager: "B. Gupta",
		BMDesignation: "Branch Manager",
	}

	return &submissionFixture{
		svc:         svc,
		drafts:      drafts,
		users:       users,
		submissions: submissions,
		renderer:    rend,
		locks:       locks,
		userId:      userId,
	}
}

// completeLODDraft is valid for the final pass with fixedNow as today.
func completeLODDraft() *booklet.Draft {
	d := booklet.NewDraft(booklet.SchemeLOD)
	d.Lists["borrowers"] = []booklet.Record{{
		"name":   "Mohan Das",
		"father": "Ratan Das",
		"mobile": "9876543210",
		"dob":    "1985-02-11",
	}}
	d.Lists["deposits"] = []booklet.Record{{
		"depositorName": "Mohan Das",
		"accNo":         "300400500",
		"inttRate":      "6.8",
		"termVal":       "100000",
		"matVal":        "113000",
		"issueDate":     "2024-01-15",
		"matDate":       "2026-01-15",
	}}
	for k, v := range map[string]string{
		"sbAcc":    "1002003004",
		"address":  "Rampur, Nadia",
		"appLoan":  "80000",
		"elgLoan":  "90000.00",
		"tenure":   "7",
		"loanType": "Overdraft",
		"spread":   "1.5",
		"appDate":  "2025-06-10",
		"sanDate":  "2025-06-14",
	} {
		d.Scalars[k] = v
	}
	return d
}

// --- tests ---

func TestSubmitSuccess(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, f.userId, completeLODDraft()))

	resp, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	require.NoError(t, err)
	assert.Equal(t, "<html>booklet</html>", resp.Document)
	assert.NotEqual(t, uuid.Nil, resp.SubmissionId)
	assert.Equal(t, 1, f.renderer.calls)

	// Audit row recorded with the rendered envelope.
	require.Len(t, f.submissions.rows, 1)
	row := f.submissions.rows[0]
	assert.Equal(t, f.userId, row.UserId)
	assert.Equal(t, booklet.SchemeLOD, row.Scheme)
	assert.Equal(t, len(resp.Document), row.DocumentSize)
	env, err := booklet.ParseEnvelope(booklet.SchemeLOD, []byte(row.Envelope))
	require.NoError(t, err)
	assert.Equal(t, "80000", env.Draft.Scalars["appLoan"])

	// The working draft survives the submission.
	d, err := f.drafts.Get(ctx, f.userId, booklet.SchemeLOD)
	require.NoError(t, err)
	assert.Equal(t, "80000", d.Scalars["appLoan"])

	// And the lock is released afterwards.
	assert.False(t, f.locks.Locked(f.userId, booklet.SchemeLOD))
}

func TestSubmitUnknownScheme(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.Submit(context.Background(), f.userId, "PMEGP")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSubmitWithoutDraft(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.Submit(context.Background(), f.userId, booklet.SchemeLOD)
	assert.ErrorIs(t, err, ErrDraftMissing)
	assert.Zero(t, f.renderer.calls)
}

func TestSubmitInvalidDraft(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	d := completeLODDraft()
	d.Scalars["address"] = ""
	require.NoError(t, f.drafts.Save(ctx, f.userId, d))

	_, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "Address is required")

	assert.Zero(t, f.renderer.calls)
	assert.Empty(t, f.submissions.rows)
	assert.False(t, f.locks.Locked(f.userId, booklet.SchemeLOD))
}

func TestSubmitIncompleteProfile(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, f.userId, completeLODDraft()))
	f.users.users[f.userId].BranchCode = ""

	_, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	assert.ErrorIs(t, err, ErrProfileIncomplete)
	assert.Zero(t, f.renderer.calls)
}

func TestSubmitUnknownUser(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	stranger := uuid.New()
	require.NoError(t, f.drafts.Save(ctx, stranger, completeLODDraft()))

	_, err := f.svc.Submit(ctx, stranger, booklet.SchemeLOD)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitRendererFailure(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, f.userId, completeLODDraft()))
	f.renderer.err = errors.New("render service unavailable")

	_, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	require.Error(t, err)

	// No audit row, draft intact, lock released.
	assert.Empty(t, f.submissions.rows)
	_, err = f.drafts.Get(ctx, f.userId, booklet.SchemeLOD)
	assert.NoError(t, err)
	assert.False(t, f.locks.Locked(f.userId, booklet.SchemeLOD))
}

func TestSubmitRefusedWhileInFlight(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, f.userId, completeLODDraft()))
	require.True(t, f.locks.TryLock(f.userId, booklet.SchemeLOD))
	defer f.locks.Unlock(f.userId, booklet.SchemeLOD)

	_, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Zero(t, f.renderer.calls)
}

func TestHistory(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.drafts.Save(ctx, f.userId, completeLODDraft()))
	_, err := f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.userId, booklet.SchemeLOD)
	require.NoError(t, err)

	items, err := f.svc.History(ctx, f.userId, booklet.SchemeLOD, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, booklet.SchemeLOD, item.Scheme)
		assert.NotEqual(t, uuid.Nil, item.Id)
	}

	// An explicit page size trims the listing.
	items, err = f.svc.History(ctx, f.userId, booklet.SchemeLOD, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Another scheme's history stays empty.
	items, err = f.svc.History(ctx, f.userId, booklet.SchemeSHG, 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.History(ctx, f.userId, "PMEGP", 0)
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
