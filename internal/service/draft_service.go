// FILE: internal/service/draft_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loan-booklet-be/internal/dto"
	"loan-booklet-be/internal/pkg/logger"
	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/records"
	"loan-booklet-be/pkg/booklet/schema"
	"loan-booklet-be/pkg/booklet/validate"
)

type IDraftService interface {
	Get(ctx context.Context, userId uuid.UUID, scheme string) (*dto.DraftResponse, error)
	UpdateField(ctx context.Context, userId uuid.UUID, scheme string, req *dto.UpdateFieldRequest) (*dto.UpdateFieldResponse, error)
	AddRecord(ctx context.Context, userId uuid.UUID, scheme, list string) (*dto.DraftResponse, error)
	UpdateRecord(ctx context.Context, userId uuid.UUID, scheme, list string, index int, req *dto.UpdateRecordRequest) (*dto.DraftResponse, error)
	DeleteRecord(ctx context.Context, userId uuid.UUID, scheme, list string, index int) (*dto.DraftResponse, error)
	Reset(ctx context.Context, userId uuid.UUID, scheme string) (*dto.DraftResponse, error)
	Import(ctx context.Context, userId uuid.UUID, scheme string, payload []byte) (*dto.DraftResponse, error)
	Export(ctx context.Context, userId uuid.UUID, scheme string) ([]byte, error)
	Next(ctx context.Context, userId uuid.UUID, scheme string) (*dto.StepResponse, error)
	Back(ctx context.Context, userId uuid.UUID, scheme string) (*dto.StepResponse, error)
	Jump(ctx context.Context, userId uuid.UUID, scheme string, step int) (*dto.StepResponse, error)
	Validate(ctx context.Context, userId uuid.UUID, scheme string, req *dto.ValidateDraftRequest) (*dto.ValidateDraftResponse, error)
}

type draftService struct {
	drafts contract.DraftRepository
	steps  contract.StepSessionRepository
	locks  *SubmissionLocks
	log    logger.ILogger
	now    func() time.Time
}

func NewDraftService(
	drafts contract.DraftRepository,
	steps contract.StepSessionRepository,
	locks *SubmissionLocks,
	log logger.ILogger,
) IDraftService {
	return &draftService{
		drafts: drafts,
		steps:  steps,
		locks:  locks,
		log:    log,
		now:    time.Now,
	}
}

func (s *draftService) scheme(code string) (*schema.Scheme, error) {
	sc, ok := schema.Get(code)
	if !ok {
		return nil, ErrUnknownScheme
	}
	return sc, nil
}

// load returns the user's working draft, seeding a fresh one on first touch.
func (s *draftService) load(ctx context.Context, userId uuid.UUID, sc *schema.Scheme) (*booklet.Draft, error) {
	d, err := s.drafts.Get(ctx, userId, sc.Code)
	if errors.Is(err, contract.ErrDraftNotFound) {
		d = sc.Seed()
		s.recompute(sc, d)
		if err := s.drafts.Save(ctx, userId, d); err != nil {
			return nil, err
		}
		s.log.Info("draft", "seeded fresh draft", map[string]interface{}{
			"user_id": userId.String(),
			"scheme":  sc.Code,
		})
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *draftService) recompute(sc *schema.Scheme, d *booklet.Draft) {
	if sc.Recompute != nil {
		sc.Recompute(d)
	}
}

// guardMutable refuses draft mutations while a submission for the same pair
// is rendering.
func (s *draftService) guardMutable(userId uuid.UUID, scheme string) error {
	if s.locks.Locked(userId, scheme) {
		return ErrSubmissionInFlight
	}
	return nil
}

func (s *draftService) currentStep(userId uuid.UUID, sc *schema.Scheme) int {
	step, found := s.steps.Get(userId, sc.Code)
	if !found || step < 1 || step > sc.Steps() {
		return 1
	}
	return step
}

func (s *draftService) toResponse(sc *schema.Scheme, d *booklet.Draft, step int) *dto.DraftResponse {
	out := d.Clone()
	return &dto.DraftResponse{
		Scheme:    sc.Code,
		Step:      step,
		Steps:     sc.StepLabels,
		AllowJump: sc.AllowJump,
		Scalars:   out.Scalars,
		Lists:     out.Lists,
		Derived:   sc.Derived,
	}
}

func (s *draftService) Get(ctx context.Context, userId uuid.UUID, scheme string) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sc, d, s.currentStep(userId, sc)), nil
}

func (s *draftService) UpdateField(ctx context.Context, userId uuid.UUID, scheme string, req *dto.UpdateFieldRequest) (*dto.UpdateFieldResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	if sc.IsDerived(req.Name) {
		return nil, fmt.Errorf("%q: %w", req.Name, ErrReadOnlyField)
	}

	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	value, warning := req.Value, ""
	if sc.Clamp != nil {
		value, warning = sc.Clamp(d, req.Name, req.Value)
	}
	d.Scalars[req.Name] = value
	s.recompute(sc, d)

	if err := s.drafts.Save(ctx, userId, d); err != nil {
		return nil, err
	}
	return &dto.UpdateFieldResponse{
		Draft:   s.toResponse(sc, d, s.currentStep(userId, sc)),
		Warning: warning,
	}, nil
}

func (s *draftService) AddRecord(ctx context.Context, userId uuid.UUID, scheme, list string) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	cfg, ok := sc.List(list)
	if !ok {
		return nil, fmt.Errorf("%q: %w", list, ErrUnknownList)
	}

	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	// At the configured maximum this is a no-op, mirroring the disabled
	// add button.
	next, added := records.Add(d.Lists[list], cfg)
	if added {
		d.Lists[list] = next
		s.recompute(sc, d)
		if err := s.drafts.Save(ctx, userId, d); err != nil {
			return nil, err
		}
	}
	return s.toResponse(sc, d, s.currentStep(userId, sc)), nil
}

func (s *draftService) UpdateRecord(ctx context.Context, userId uuid.UUID, scheme, list string, index int, req *dto.UpdateRecordRequest) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	if _, ok := sc.List(list); !ok {
		return nil, fmt.Errorf("%q: %w", list, ErrUnknownList)
	}

	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	next, err := records.UpdateField(d.Lists[list], index, req.Field, req.Value)
	if err != nil {
		return nil, fmt.Errorf("%s[%d]: %w", list, index, ErrRecordNotFound)
	}
	d.Lists[list] = next
	s.recompute(sc, d)

	if err := s.drafts.Save(ctx, userId, d); err != nil {
		return nil, err
	}
	return s.toResponse(sc, d, s.currentStep(userId, sc)), nil
}

func (s *draftService) DeleteRecord(ctx context.Context, userId uuid.UUID, scheme, list string, index int) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	cfg, ok := sc.List(list)
	if !ok {
		return nil, fmt.Errorf("%q: %w", list, ErrUnknownList)
	}

	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	next, err := records.Delete(d.Lists[list], index, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s[%d]: %w", list, index, ErrRecordNotFound)
	}
	d.Lists[list] = next
	s.recompute(sc, d)

	if err := s.drafts.Save(ctx, userId, d); err != nil {
		return nil, err
	}
	return s.toResponse(sc, d, s.currentStep(userId, sc)), nil
}

func (s *draftService) Reset(ctx context.Context, userId uuid.UUID, scheme string) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, userId, scheme); err != nil {
		return nil, err
	}
	s.steps.Delete(userId, scheme)

	d := sc.Seed()
	s.recompute(sc, d)
	if err := s.drafts.Save(ctx, userId, d); err != nil {
		return nil, err
	}
	s.log.Info("draft", "draft reset", map[string]interface{}{
		"user_id": userId.String(),
		"scheme":  scheme,
	})
	return s.toResponse(sc, d, 1), nil
}

// Import replaces the whole draft from an exported envelope. A payload that
// fails to parse, or whose lists break the scheme's bounds, leaves the
// current draft untouched.
func (s *draftService) Import(ctx context.Context, userId uuid.UUID, scheme string, payload []byte) (*dto.DraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}

	env, err := booklet.ParseEnvelope(scheme, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	d := env.Draft

	for name, cfg := range sc.Lists {
		list := d.Lists[name]
		if cfg.Max > 0 && len(list) > cfg.Max {
			return nil, fmt.Errorf("%w: list %q exceeds %d records", ErrImportInvalid, name, cfg.Max)
		}
		if len(list) == 0 && cfg.Seed > 0 {
			list = cfg.SeedList()
		}
		if cfg.RoleField != "" && cfg.RoleOf != nil {
			for i := range list {
				list[i][cfg.RoleField] = cfg.RoleOf(i)
			}
		}
		d.Lists[name] = list
	}
	s.recompute(sc, d)

	if err := s.drafts.Save(ctx, userId, d); err != nil {
		return nil, err
	}
	return s.toResponse(sc, d, s.currentStep(userId, sc)), nil
}

func (s *draftService) Export(ctx context.Context, userId uuid.UUID, scheme string) ([]byte, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}
	env := &booklet.Envelope{Scheme: scheme, UserData: json.RawMessage("{}"), Draft: d}
	return env.MarshalJSON()
}

// Next advances one step after the current step's rules pass. A failing pass
// keeps the user in place and returns the violations instead.
func (s *draftService) Next(ctx context.Context, userId uuid.UUID, scheme string) (*dto.StepResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	cur := s.currentStep(userId, sc)
	if errs := sc.Rules.Validate(d, validate.Step(cur), s.now()); len(errs) > 0 {
		return &dto.StepResponse{Step: cur, Errors: errs}, nil
	}
	if cur < sc.Steps() {
		cur++
		s.steps.Save(userId, scheme, cur)
	}
	return &dto.StepResponse{Step: cur}, nil
}

func (s *draftService) Back(ctx context.Context, userId uuid.UUID, scheme string) (*dto.StepResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	cur := s.currentStep(userId, sc)
	if cur > 1 {
		cur--
		s.steps.Save(userId, scheme, cur)
	}
	return &dto.StepResponse{Step: cur}, nil
}

func (s *draftService) Jump(ctx context.Context, userId uuid.UUID, scheme string, step int) (*dto.StepResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	if err := s.guardMutable(userId, scheme); err != nil {
		return nil, err
	}
	if !sc.AllowJump {
		return nil, ErrJumpNotAllowed
	}
	if step < 1 || step > sc.Steps() {
		return nil, fmt.Errorf("step %d: %w", step, ErrStepOutOfRange)
	}
	s.steps.Save(userId, scheme, step)
	return &dto.StepResponse{Step: step}, nil
}

func (s *draftService) Validate(ctx context.Context, userId uuid.UUID, scheme string, req *dto.ValidateDraftRequest) (*dto.ValidateDraftResponse, error) {
	sc, err := s.scheme(scheme)
	if err != nil {
		return nil, err
	}
	d, err := s.load(ctx, userId, sc)
	if err != nil {
		return nil, err
	}

	scope := validate.Final()
	if req.Scope == "step" {
		step := req.Step
		if step == 0 {
			step = s.currentStep(userId, sc)
		}
		if step < 1 || step > sc.Steps() {
			return nil, fmt.Errorf("step %d: %w", step, ErrStepOutOfRange)
		}
		scope = validate.Step(step)
	}

	errs := sc.Rules.Validate(d, scope, s.now())
	return &dto.ValidateDraftResponse{
		Valid:  len(errs) == 0,
		Errors: append([]string{}, errs...),
	}, nil
}
