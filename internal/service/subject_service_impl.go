package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/google/uuid"
)

type subjectService struct {
	subjects repository.SubjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSubjectService(subjects repository.SubjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SubjectService {
	return &subjectService{
		subjects: subjects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *subjectService) Create(ctx context.Context, subj *domain.Subject) error {
	subj.Normalize()
	if err := subj.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if subj.ID == "" {
		subj.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	subj.CreatedAt = now
	subj.UpdatedAt = now
	return s.subjects.Create(ctx, subj)
}

func (s *subjectService) GetByID(ctx context.Context, ownerID, id string) (*domain.Subject, error) {
	return s.subjects.GetByID(ctx, ownerID, id)
}

func (s *subjectService) List(ctx context.Context, ownerID string) ([]*domain.Subject, error) {
	return s.subjects.List(ctx, ownerID)
}

func (s *subjectService) Update(ctx context.Context, subj *domain.Subject) error {
	subj.Normalize()
	if err := subj.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	subj.UpdatedAt = time.Now().UTC()
	return s.subjects.Update(ctx, subj)
}

func (s *subjectService) Delete(ctx context.Context, ownerID, id string) (removed int64, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner_id": ownerID, "subject_id": id}
	defer func() {
		fields["assignments_removed"] = removed
		observe(ctx, s.observer, "delete_subject", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSubjectRepo(tx).Delete(ctx, ownerID, id); err != nil {
			return err
		}
		n, err := repository.NewSQLiteAssignmentRepo(tx).DeleteBySubject(ctx, ownerID, id)
		if err != nil {
			return fmt.Errorf("deleting assignments of subject %s: %w", id, err)
		}
		removed = n
		return nil
	})
	if err != nil {
		removed = 0
		return 0, err
	}
	return removed, nil
}
