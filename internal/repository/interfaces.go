package repository

import (
	"context"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// AssignmentFilter narrows an owner's assignment listing. Zero values match
// everything.
type AssignmentFilter struct {
	Status    domain.AssignmentStatus
	SubjectID string
}

// Every method is owner-scoped: a record owned by someone else behaves
// exactly like a missing one.

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Subject, error)
	List(ctx context.Context, ownerID string) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, ownerID, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Assignment, error)
	// List orders by due date ascending.
	List(ctx context.Context, ownerID string, filter AssignmentFilter) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, ownerID, id string) error
	DeleteBySubject(ctx context.Context, ownerID, subjectID string) (int64, error)
}

type StudyPlanRepo interface {
	// Create inserts the plan and its sessions. Callers run it inside a
	// UnitOfWork so a failed session insert leaves no plan behind.
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.StudyPlan, error)
	ListRecent(ctx context.Context, ownerID string, limit int) ([]*domain.StudyPlan, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListOwners(ctx context.Context) ([]string, error)
	DeleteBeyond(ctx context.Context, ownerID string, keep int) (int64, error)
}
