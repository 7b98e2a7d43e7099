package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	subj := testutil.NewTestSubject("u1", "Calculus", testutil.WithCode("MATH101"), testutil.WithCredits(4))
	require.NoError(t, repo.Create(ctx, subj))

	fetched, err := repo.GetByID(ctx, "u1", subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calculus", fetched.Name)
	assert.Equal(t, "MATH101", fetched.Code)
	assert.Equal(t, 4, fetched.Credits)
	assert.Equal(t, "#6366f1", fetched.Color)
	assert.True(t, subj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestSubjectRepo_GetByID_ForeignOwnerIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	subj := testutil.NewTestSubject("u1", "Calculus")
	require.NoError(t, repo.Create(ctx, subj))

	_, err := repo.GetByID(ctx, "u2", subj.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, "u1", "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubjectRepo_List_NewestFirstAndOwnerScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	older := testutil.NewTestSubject("u1", "Older", testutil.WithSubjectCreatedAt(base))
	newer := testutil.NewTestSubject("u1", "Newer", testutil.WithSubjectCreatedAt(base.Add(time.Hour)))
	other := testutil.NewTestSubject("u2", "Other")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, "Older", list[1].Name)
}

func TestSubjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	subj := testutil.NewTestSubject("u1", "Bio")
	require.NoError(t, repo.Create(ctx, subj))

	subj.Name = "Biology"
	subj.Color = "#22c55e"
	require.NoError(t, repo.Update(ctx, subj))

	fetched, err := repo.GetByID(ctx, "u1", subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biology", fetched.Name)
	assert.Equal(t, "#22c55e", fetched.Color)
}

func TestSubjectRepo_UpdateAndDelete_ForeignOwnerIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	subj := testutil.NewTestSubject("u1", "Bio")
	require.NoError(t, repo.Create(ctx, subj))

	hijack := *subj
	hijack.OwnerID = "u2"
	hijack.Name = "Stolen"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u2", subj.ID), ErrNotFound)

	fetched, err := repo.GetByID(ctx, "u1", subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bio", fetched.Name)
}
