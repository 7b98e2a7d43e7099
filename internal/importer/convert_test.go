package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	schema := validSchema()
	schema.Subjects[0].Assignments[1].Progress = ptrInt(100)

	out, err := Convert(schema, "user-1", now)
	require.NoError(t, err)
	require.Len(t, out.Subjects, 2)
	require.Len(t, out.Assignments, 2)

	english := out.Subjects[0]
	assert.NotEmpty(t, english.ID)
	assert.Equal(t, "user-1", english.OwnerID)
	assert.Equal(t, "EN101", english.Code)
	assert.Equal(t, domain.DefaultSubjectColor, english.Color)
	assert.Equal(t, 4, out.Subjects[1].Credits)

	essay := out.Assignments[0]
	assert.Equal(t, english.ID, essay.SubjectID)
	assert.Equal(t, "user-1", essay.OwnerID)
	assert.Equal(t, domain.PriorityHigh, essay.Priority)
	assert.Equal(t, domain.TypeHomework, essay.Type)
	assert.Equal(t, 4.0, essay.EstimatedHours)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), essay.DueDate)
	assert.False(t, essay.IsCompleted)
	require.NotNil(t, essay.Subject)
	assert.Equal(t, "English", essay.Subject.Name)

	log := out.Assignments[1]
	assert.Equal(t, domain.DefaultEstimatedHours, log.EstimatedHours)
	assert.True(t, log.IsCompleted)
	require.NotNil(t, log.CompletedAt)
	assert.Equal(t, now, *log.CompletedAt)
}
