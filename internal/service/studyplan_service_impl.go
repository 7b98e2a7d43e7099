package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/intelligence"
	"github.com/alexanderramin/studybuddy/internal/llm"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultPlanListLimit = 10
	MaxPlanListLimit     = 50
)

// StudyPlanOptions tunes plan generation. The zero value is usable.
type StudyPlanOptions struct {
	// MaxInFlightPerOwner caps concurrent generations per owner. 0 means
	// unlimited.
	MaxInFlightPerOwner int

	// Now overrides the clock used for "today" and creation stamps.
	Now func() time.Time
}

type studyPlanService struct {
	plans       repository.StudyPlanRepo
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	client      llm.LLMClient
	drafter     intelligence.StudyPlanDraftService
	limiter     *inFlightLimiter
	now         func() time.Time
	observer    UseCaseObserver
}

// NewStudyPlanService wires the plan orchestrator. client may be nil, in
// which case Generate reports ErrServiceUnavailable.
func NewStudyPlanService(
	plans repository.StudyPlanRepo,
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	client llm.LLMClient,
	opts StudyPlanOptions,
	observers ...UseCaseObserver,
) StudyPlanService {
	var drafter intelligence.StudyPlanDraftService
	if client != nil {
		drafter = intelligence.NewStudyPlanDraftService(client)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &studyPlanService{
		plans:       plans,
		assignments: assignments,
		uow:         uow,
		client:      client,
		drafter:     drafter,
		limiter:     newInFlightLimiter(opts.MaxInFlightPerOwner),
		now:         now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *studyPlanService) Configured() bool {
	return s.drafter != nil
}

// Reachable asks the completion provider whether it answers right now.
func (s *studyPlanService) Reachable(ctx context.Context) bool {
	return s.client != nil && s.client.Available(ctx)
}

// Generate drafts a plan for the owner's pending assignments and stores it.
// Nothing is written unless the draft reconciles cleanly.
func (s *studyPlanService) Generate(ctx context.Context, ownerID string) (plan *domain.StudyPlan, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		if plan != nil {
			fields["plan_id"] = plan.ID
			fields["sessions"] = len(plan.Sessions)
			fields["linked_sessions"] = plan.LinkedCount()
		}
		observe(ctx, s.observer, "generate_study_plan", startedAt, fields, err)
	}()

	if s.drafter == nil {
		return nil, ErrServiceUnavailable
	}

	release, err := s.limiter.acquire(ownerID)
	if err != nil {
		return nil, err
	}
	defer release()

	pending, err := s.assignments.List(ctx, ownerID, repository.AssignmentFilter{Status: domain.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("listing pending assignments: %w", err)
	}
	fields["pending_assignments"] = len(pending)
	if len(pending) == 0 {
		return nil, ErrNoPendingWork
	}

	now := s.now().UTC()
	draft, err := s.drafter.Draft(ctx, intelligence.PromptAssignmentsFrom(pending), now)
	if err != nil {
		return nil, classifyDraftError(err)
	}

	draft.ID = uuid.New().String()
	draft.OwnerID = ownerID
	draft.CreatedAt = now
	for i := range draft.Sessions {
		draft.Sessions[i].ID = uuid.New().String()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStudyPlanRepo(tx).Create(ctx, draft)
	})
	if err != nil {
		return nil, fmt.Errorf("saving study plan: %w", err)
	}

	plan, err = s.plans.GetByID(ctx, ownerID, draft.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading study plan %s: %w", draft.ID, err)
	}
	return plan, nil
}

func (s *studyPlanService) ListRecent(ctx context.Context, ownerID string, limit int) ([]*domain.StudyPlan, error) {
	if limit <= 0 {
		limit = DefaultPlanListLimit
	}
	if limit > MaxPlanListLimit {
		limit = MaxPlanListLimit
	}
	return s.plans.ListRecent(ctx, ownerID, limit)
}

func (s *studyPlanService) GetByID(ctx context.Context, ownerID, id string) (*domain.StudyPlan, error) {
	return s.plans.GetByID(ctx, ownerID, id)
}

func (s *studyPlanService) Delete(ctx context.Context, ownerID, id string) error {
	return s.plans.Delete(ctx, ownerID, id)
}

// classifyDraftError maps drafting failures onto the service taxonomy.
func classifyDraftError(err error) error {
	switch {
	case errors.Is(err, ErrNoPendingWork), errors.Is(err, ErrMalformedResponse):
		return err
	case errors.Is(err, llm.ErrNotConfigured):
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}

type inFlightLimiter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

func newInFlightLimiter(limit int) *inFlightLimiter {
	return &inFlightLimiter{limit: limit, counts: make(map[string]int)}
}

// acquire reserves a generation slot for owner. The returned func releases it.
func (l *inFlightLimiter) acquire(owner string) (func(), error) {
	if l.limit <= 0 {
		return func() {}, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[owner] >= l.limit {
		return nil, ErrTooManyGenerations
	}
	l.counts[owner]++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.counts[owner]--
		if l.counts[owner] <= 0 {
			delete(l.counts, owner)
		}
	}, nil
}
