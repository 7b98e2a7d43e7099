package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/importer"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func termSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Subjects: []importer.SubjectImport{
			{
				Name: "English",
				Code: "en101",
				Assignments: []importer.AssignmentImport{
					{Title: "Essay", DueDate: "2025-03-20", Priority: "high", EstimatedHours: ptrFloat(4)},
				},
			},
			{
				Name: "Physics",
				Assignments: []importer.AssignmentImport{
					{Title: "Lab report", DueDate: "2025-03-22", Type: "project"},
				},
			},
		},
	}
}

func TestImportSchema_CreatesEverything(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	obs := &captureUseCaseObserver{}
	svc := NewImportService(env.uow, obs)

	result, err := svc.ImportSchema(ctx, owner, termSchema())
	require.NoError(t, err)
	require.Len(t, result.Subjects, 2)
	assert.Equal(t, 2, result.AssignmentCount)

	subjects, err := env.subjects.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)

	list, err := env.assignments.List(ctx, owner, repository.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Essay", list[0].Title)
	require.NotNil(t, list[0].Subject)
	assert.Equal(t, "English", list[0].Subject.Name)
	assert.Equal(t, domain.TypeProject, list[1].Type)

	event := obs.last()
	assert.Equal(t, "import_syllabus", event.Name)
	assert.True(t, event.Success())
	assert.Equal(t, 2, event.Fields["assignments"])
}

func TestImportSchema_ValidationFailsWithoutWriting(t *testing.T) {
	env := setupEnv(t)
	svc := NewImportService(env.uow)

	schema := termSchema()
	schema.Subjects[1].Assignments[0].DueDate = "someday"
	schema.Subjects[0].Name = ""

	_, err := svc.ImportSchema(context.Background(), owner, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Contains(t, err.Error(), "subjects[1].assignments[0].due_date")

	assert.Equal(t, 0, env.countRows(t, "subjects"))
}

func TestImportSchema_RollsBackOnFailure(t *testing.T) {
	env := setupEnv(t)
	injected := errors.New("disk full")
	// Exec 1-2 insert subjects, 3-4 insert assignments.
	uow := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 4, Err: injected}
	svc := NewImportService(uow)

	_, err := svc.ImportSchema(context.Background(), owner, termSchema())
	require.ErrorIs(t, err, injected)
	assert.Contains(t, err.Error(), "Lab report")

	assert.Equal(t, 0, env.countRows(t, "subjects"))
	assert.Equal(t, 0, env.countRows(t, "assignments"))
}

func TestImportFile(t *testing.T) {
	env := setupEnv(t)
	svc := NewImportService(env.uow)
	dir := t.TempDir()

	path := filepath.Join(dir, "term.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"subjects":[{"name":"History","assignments":[{"title":"Timeline","due_date":"2025-04-01"}]}]}`), 0644))

	result, err := svc.ImportFile(context.Background(), owner, path)
	require.NoError(t, err)
	assert.Equal(t, "History", result.Subjects[0].Name)
	assert.Equal(t, 1, result.AssignmentCount)

	_, err = svc.ImportFile(context.Background(), owner, filepath.Join(dir, "nope.json"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
