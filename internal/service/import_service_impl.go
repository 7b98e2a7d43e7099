package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/importer"
	"github.com/alexanderramin/studybuddy/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService writes every subject and assignment of an import inside
// a single transaction; a failure leaves nothing behind.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, ownerID, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("%w: loading import file: %v", ErrInvalidInput, err)
	}
	return s.ImportSchema(ctx, ownerID, schema)
}

func (s *importService) ImportSchema(ctx context.Context, ownerID string, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner_id": ownerID}
	defer func() {
		if result != nil {
			fields["subjects"] = len(result.Subjects)
			fields["assignments"] = result.AssignmentCount
		}
		observe(ctx, s.observer, "import_syllabus", startedAt, fields, err)
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	syllabus, err := importer.Convert(schema, ownerID, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		for _, subj := range syllabus.Subjects {
			if err := subjects.Create(ctx, subj); err != nil {
				return fmt.Errorf("creating subject %q: %w", subj.Name, err)
			}
		}
		assignments := repository.NewSQLiteAssignmentRepo(tx)
		for _, a := range syllabus.Assignments {
			if err := assignments.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignment %q: %w", a.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Subjects:        syllabus.Subjects,
		AssignmentCount: len(syllabus.Assignments),
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, b.String())
}
