package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/google/uuid"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	subjects    repository.SubjectRepo
	observer    UseCaseObserver
}

func NewAssignmentService(
	assignments repository.AssignmentRepo,
	subjects repository.SubjectRepo,
	observers ...UseCaseObserver,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		subjects:    subjects,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *assignmentService) Create(ctx context.Context, a *domain.Assignment) error {
	a.ApplyDefaults()
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	subj, err := s.ownedSubject(ctx, a.OwnerID, a.SubjectID)
	if err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.assignments.Create(ctx, a); err != nil {
		return err
	}
	a.Subject = subj.Summary()
	return nil
}

func (s *assignmentService) GetByID(ctx context.Context, ownerID, id string) (*domain.Assignment, error) {
	return s.assignments.GetByID(ctx, ownerID, id)
}

func (s *assignmentService) List(ctx context.Context, ownerID string, filter repository.AssignmentFilter) ([]*domain.Assignment, error) {
	switch filter.Status {
	case domain.StatusAll, domain.StatusPending, domain.StatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.assignments.List(ctx, ownerID, filter)
}

func (s *assignmentService) Update(ctx context.Context, a *domain.Assignment) error {
	a.ApplyDefaults()
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	subj, err := s.ownedSubject(ctx, a.OwnerID, a.SubjectID)
	if err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.assignments.Update(ctx, a); err != nil {
		return err
	}
	a.Subject = subj.Summary()
	return nil
}

func (s *assignmentService) UpdateProgress(ctx context.Context, ownerID, id string, progress int) (a *domain.Assignment, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "update_assignment_progress", startedAt,
			map[string]any{"owner_id": ownerID, "assignment_id": id, "progress": progress}, err)
	}()

	a, err = s.assignments.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := a.SetProgress(progress, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("updating progress of %s: %w", id, err)
	}
	return a, nil
}

func (s *assignmentService) Delete(ctx context.Context, ownerID, id string) error {
	return s.assignments.Delete(ctx, ownerID, id)
}

// ownedSubject resolves a subject reference, reporting ErrNotFound when it
// belongs to someone else.
func (s *assignmentService) ownedSubject(ctx context.Context, ownerID, subjectID string) (*domain.Subject, error) {
	subj, err := s.subjects.GetByID(ctx, ownerID, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("subject %s: %w", subjectID, ErrNotFound)
		}
		return nil, err
	}
	return subj, nil
}
