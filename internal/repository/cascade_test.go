package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_SubjectThenAssignmentsInTx verifies the two-step subject
// removal commits when both steps run in one transaction.
func TestCascadeDelete_SubjectThenAssignmentsInTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	subjRepo := NewSQLiteSubjectRepo(database)
	asgRepo := NewSQLiteAssignmentRepo(database)

	math := testutil.NewTestSubject("u1", "Math")
	history := testutil.NewTestSubject("u1", "History")
	require.NoError(t, subjRepo.Create(ctx, math))
	require.NoError(t, subjRepo.Create(ctx, history))
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment("u1", math.ID, "Integrals")))
	require.NoError(t, asgRepo.Create(ctx, testutil.NewTestAssignment("u1", math.ID, "Limits")))
	keep := testutil.NewTestAssignment("u1", history.ID, "Essay")
	require.NoError(t, asgRepo.Create(ctx, keep))

	var removed int64
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteSubjectRepo(tx).Delete(ctx, "u1", math.ID); err != nil {
			return err
		}
		n, err := NewSQLiteAssignmentRepo(tx).DeleteBySubject(ctx, "u1", math.ID)
		removed = n
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := asgRepo.List(ctx, "u1", AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}

// TestCascadeDelete_PlanToSessions verifies study_plans -> study_sessions cascade.
func TestCascadeDelete_PlanToSessions(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	planRepo := NewSQLiteStudyPlanRepo(database)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	plan := testutil.NewTestStudyPlan("u1", testutil.WithSessions(testutil.NewTestSession(day, 60)))
	require.NoError(t, planRepo.Create(ctx, plan))

	require.NoError(t, planRepo.Delete(ctx, "u1", plan.ID))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM study_sessions`).Scan(&n))
	assert.Equal(t, 0, n, "sessions should be cascade-deleted with their plan")
}

// TestDeleteAssignment_UnlinksSessions verifies that removing an assignment
// keeps the sessions of existing plans but drops their references.
func TestDeleteAssignment_UnlinksSessions(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subjRepo := NewSQLiteSubjectRepo(database)
	asgRepo := NewSQLiteAssignmentRepo(database)
	planRepo := NewSQLiteStudyPlanRepo(database)

	subj := testutil.NewTestSubject("u1", "English")
	require.NoError(t, subjRepo.Create(ctx, subj))
	a := testutil.NewTestAssignment("u1", subj.ID, "Essay")
	require.NoError(t, asgRepo.Create(ctx, a))

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	plan := testutil.NewTestStudyPlan("u1", testutil.WithSessions(
		testutil.NewTestSession(day, 60, testutil.WithLinkedAssignment(a)),
	))
	require.NoError(t, planRepo.Create(ctx, plan))

	require.NoError(t, asgRepo.Delete(ctx, "u1", a.ID))

	got, err := planRepo.GetByID(ctx, "u1", plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)
	assert.Nil(t, got.Sessions[0].AssignmentID)
	assert.Nil(t, got.Sessions[0].Assignment)
	require.NotNil(t, got.Sessions[0].Subject, "subject still exists")
	assert.Equal(t, "English", got.Sessions[0].Subject.Name)
}
