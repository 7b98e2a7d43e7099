package service

import (
	"context"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/importer"
	"github.com/alexanderramin/studybuddy/internal/repository"
)

// SubjectService manages an owner's subjects.
type SubjectService interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Subject, error)
	List(ctx context.Context, ownerID string) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	// Delete removes the subject and the owner's assignments filed under it,
	// returning how many assignments went with it.
	Delete(ctx context.Context, ownerID, id string) (int64, error)
}

// AssignmentService manages an owner's assignments.
type AssignmentService interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Assignment, error)
	List(ctx context.Context, ownerID string, filter repository.AssignmentFilter) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	UpdateProgress(ctx context.Context, ownerID, id string, progress int) (*domain.Assignment, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// StudyPlanService generates and manages study plans.
type StudyPlanService interface {
	Generate(ctx context.Context, ownerID string) (*domain.StudyPlan, error)
	ListRecent(ctx context.Context, ownerID string, limit int) ([]*domain.StudyPlan, error)
	GetByID(ctx context.Context, ownerID, id string) (*domain.StudyPlan, error)
	Delete(ctx context.Context, ownerID, id string) error
	// Configured reports whether a completion client is wired in.
	Configured() bool
	Reachable(ctx context.Context) bool
}

// RetentionService trims old study plans.
type RetentionService interface {
	Prune(ctx context.Context) (int64, error)
}

// ImportResult summarizes a syllabus import.
type ImportResult struct {
	Subjects        []*domain.Subject
	AssignmentCount int
}

// ImportService loads a term's subjects and assignments in one step.
type ImportService interface {
	ImportFile(ctx context.Context, ownerID, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, ownerID string, schema *importer.ImportSchema) (*ImportResult, error)
}
