package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/robfig/cron/v3"
)

type retentionService struct {
	plans    repository.StudyPlanRepo
	keep     int
	observer UseCaseObserver
}

// NewRetentionService keeps the newest keep plans of every owner.
func NewRetentionService(plans repository.StudyPlanRepo, keep int, observers ...UseCaseObserver) RetentionService {
	return &retentionService{
		plans:    plans,
		keep:     keep,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *retentionService) Prune(ctx context.Context) (removed int64, err error) {
	startedAt := time.Now()
	fields := map[string]any{"keep": s.keep}
	defer func() {
		fields["plans_removed"] = removed
		observe(ctx, s.observer, "prune_study_plans", startedAt, fields, err)
	}()

	if s.keep <= 0 {
		return 0, nil
	}
	owners, err := s.plans.ListOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing plan owners: %w", err)
	}
	fields["owners"] = len(owners)
	for _, owner := range owners {
		n, err := s.plans.DeleteBeyond(ctx, owner, s.keep)
		if err != nil {
			return removed, fmt.Errorf("pruning plans of %s: %w", owner, err)
		}
		removed += n
	}
	return removed, nil
}

// RetentionScheduler runs Prune on a cron schedule.
type RetentionScheduler struct {
	cron   *cron.Cron
	svc    RetentionService
	logger *slog.Logger
}

func NewRetentionScheduler(svc RetentionService, logger *slog.Logger) *RetentionScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionScheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		svc:    svc,
		logger: logger,
	}
}

// Schedule registers the prune job. spec accepts standard five-field cron
// expressions and descriptors such as "@daily".
func (s *RetentionScheduler) Schedule(spec string) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return 0, fmt.Errorf("invalid retention schedule %q: %w", spec, err)
	}
	return id, nil
}

func (s *RetentionScheduler) run() {
	n, err := s.svc.Prune(context.Background())
	if err != nil {
		s.logger.Error("plan retention failed", "error", err)
		return
	}
	s.logger.Info("plan retention finished", "plans_removed", n)
}

func (s *RetentionScheduler) Start() {
	s.cron.Start()
}

func (s *RetentionScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
