// FILE: internal/service/submission_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"loan-booklet-be/internal/dto"
	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/pkg/logger"
	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/internal/repository/specification"
	"loan-booklet-be/internal/repository/unitofwork"
	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/schema"
	"loan-booklet-be/pkg/booklet/validate"
	"loan-booklet-be/pkg/renderer"
)

type ISubmissionService interface {
	Submit(ctx context.Context, userId uuid.UUID, scheme string) (*dto.SubmitResponse, error)
	History(ctx context.Context, userId uuid.UUID, scheme string, limit int) ([]*dto.SubmissionHistoryItem, error)
}

const (
	historyDefaultLimit = 50
	historyMaxLimit     = 200
)

type submissionService struct {
	drafts     contract.DraftRepository
	uowFactory unitofwork.RepositoryFactory
	renderer   renderer.Renderer
	locks      *SubmissionLocks
	log        logger.ILogger
	now        func() time.Time
}

func NewSubmissionService(
	drafts contract.DraftRepository,
	uowFactory unitofwork.RepositoryFactory,
	rend renderer.Renderer,
	locks *SubmissionLocks,
	log logger.ILogger,
) ISubmissionService {
	return &submissionService{
		drafts:     drafts,
		uowFactory: uowFactory,
		renderer:   rend,
		locks:      locks,
		log:        log,
		now:        time.Now,
	}
}

// Submit runs the full pre-flight (final validation, branch profile check),
// renders the booklet, and records the audit snapshot. The working draft is
// never touched: a failed submission leaves everything as it was, and a
// successful one keeps the draft around for corrections and re-prints.
func (s *submissionService) Submit(ctx context.Context, userId uuid.UUID, scheme string) (*dto.SubmitResponse, error) {
	sc, ok := schema.Get(scheme)
	if !ok {
		return nil, ErrUnknownScheme
	}

	if !s.locks.TryLock(userId, scheme) {
		return nil, ErrSubmissionInFlight
	}
	defer s.locks.Unlock(userId, scheme)

	d, err := s.drafts.Get(ctx, userId, scheme)
	if errors.Is(err, contract.ErrDraftNotFound) {
		return nil, ErrDraftMissing
	}
	if err != nil {
		return nil, err
	}

	if errs := sc.Rules.Validate(d, validate.Final(), s.now()); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	userData, err := json.Marshal(userPayload(user))
	if err != nil {
		return nil, err
	}
	env := &booklet.Envelope{Scheme: scheme, UserData: userData, Draft: d}

	document, err := s.renderer.Render(ctx, env)
	if err != nil {
		s.log.Error("submission", "renderer call failed", map[string]interface{}{
			"user_id": userId.String(),
			"scheme":  scheme,
			"error":   err.Error(),
		})
		return nil, err
	}

	raw, err := env.MarshalJSON()
	if err != nil {
		return nil, err
	}
	submission := &entity.Submission{
		UserId:       userId,
		Scheme:       scheme,
		Envelope:     string(raw),
		DocumentSize: len(document),
	}
	if err := uow.SubmissionRepository().Create(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Info("submission", "booklet rendered", map[string]interface{}{
		"user_id":       userId.String(),
		"scheme":        scheme,
		"submission_id": submission.Id.String(),
		"document_size": submission.DocumentSize,
	})
	return &dto.SubmitResponse{
		SubmissionId: submission.Id,
		Document:     document,
	}, nil
}

func (s *submissionService) History(ctx context.Context, userId uuid.UUID, scheme string, limit int) ([]*dto.SubmissionHistoryItem, error) {
	if _, ok := schema.Get(scheme); !ok {
		return nil, ErrUnknownScheme
	}
	if limit <= 0 || limit > historyMaxLimit {
		limit = historyDefaultLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs, err := uow.SubmissionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByScheme{Scheme: scheme},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubmissionHistoryItem, 0, len(subs))
	for _, sub := range subs {
		items = append(items, &dto.SubmissionHistoryItem{
			Id:           sub.Id,
			Scheme:       sub.Scheme,
			DocumentSize: sub.DocumentSize,
			CreatedAt:    sub.CreatedAt,
		})
	}
	return items, nil
}

// userPayload is the user_data block stamped into the rendered booklet.
func userPayload(u *entity.User) map[string]string {
	return map[string]string{
		"name":          u.Name,
		"email":         u.Email,
		"mobile":        u.Mobile,
		"brName":        u.BranchName,
		"brPlace":       u.BranchPlace,
		"brCode":        u.BranchCode,
		"brAbm":         u.BranchABM,
		"brManager":     u.BranchManager,
		"BMDesignation": u.BMDesignation,
	}
}
