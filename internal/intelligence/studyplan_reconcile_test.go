package intelligence

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const essayResponse = `{"title":"Plan","startDate":"2024-01-01","endDate":"2024-01-03","sessions":[{"assignmentTitle":"Essay","subjectName":"English","date":"2024-01-01","startTime":"9:00 AM","endTime":"10:30 AM","duration":90,"topic":"Outline","description":"","tips":["Use an outline"]}],"aiGeneratedInsights":{"summary":"...","recommendations":[],"estimatedTotalHours":4,"priorityFocus":"Essay"}}`

func TestReconcile_EssayScenarioLinksSession(t *testing.T) {
	plan, err := ReconcileStudyPlan(essayResponse, []PromptAssignment{essayAssignment()})
	require.NoError(t, err)

	assert.Equal(t, "Plan", plan.Title)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), plan.StartDate)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), plan.EndDate)
	require.Len(t, plan.Sessions, 1)

	s := plan.Sessions[0]
	require.NotNil(t, s.AssignmentID)
	require.NotNil(t, s.SubjectID)
	assert.Equal(t, "asg-essay", *s.AssignmentID)
	assert.Equal(t, "subj-english", *s.SubjectID)
	assert.Equal(t, 90, s.DurationMin)
	assert.Equal(t, "9:00 AM", s.StartTime)
	assert.Equal(t, "10:30 AM", s.EndTime)
	assert.Equal(t, "Outline", s.Topic)
	assert.Equal(t, []string{"Use an outline"}, s.Tips)

	require.NotNil(t, plan.Insights)
	assert.Equal(t, "Essay", plan.Insights.PriorityFocus)
	assert.Equal(t, 4.0, plan.Insights.EstimatedTotalHours)
	assert.Equal(t, []string{}, plan.Insights.Recommendations)
}

func TestReconcile_UnknownAssignmentRetainedUnlinked(t *testing.T) {
	raw := `{"title":"Plan","startDate":"2024-01-01","endDate":"2024-01-03","sessions":[
		{"assignmentTitle":"Unknown","subjectName":"English","date":"2024-01-01","duration":60,"topic":"Review"},
		{"assignmentTitle":"Essay","subjectName":"English","date":"2024-01-02","duration":30,"topic":"Draft"}
	]}`
	plan, err := ReconcileStudyPlan(raw, []PromptAssignment{essayAssignment()})
	require.NoError(t, err)

	require.Len(t, plan.Sessions, 2, "sessions in equals sessions out")
	assert.Nil(t, plan.Sessions[0].AssignmentID)
	assert.Nil(t, plan.Sessions[0].SubjectID)
	assert.NotNil(t, plan.Sessions[1].AssignmentID)
	assert.Equal(t, 1, plan.LinkedCount())
}

func TestReconcile_SubjectMismatchDoesNotLink(t *testing.T) {
	raw := `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[
		{"assignmentTitle":"Essay","subjectName":"History","date":"2024-01-01","duration":60}
	]}`
	plan, err := ReconcileStudyPlan(raw, []PromptAssignment{essayAssignment()})
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 1)
	assert.Nil(t, plan.Sessions[0].AssignmentID)
}

func TestReconcile_MatchingIsExact(t *testing.T) {
	raw := `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[
		{"assignmentTitle":"essay","subjectName":"English","date":"2024-01-01"},
		{"assignmentTitle":"Essay ","subjectName":"English","date":"2024-01-01"}
	]}`
	plan, err := ReconcileStudyPlan(raw, []PromptAssignment{essayAssignment()})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.LinkedCount())
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	first := essayAssignment()
	second := essayAssignment()
	second.ID = "asg-essay-2"
	second.SubjectID = "subj-english-2"

	raw := `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[
		{"assignmentTitle":"Essay","subjectName":"English","date":"2024-01-01"}
	]}`
	plan, err := ReconcileStudyPlan(raw, []PromptAssignment{first, second})
	require.NoError(t, err)
	require.NotNil(t, plan.Sessions[0].AssignmentID)
	assert.Equal(t, "asg-essay", *plan.Sessions[0].AssignmentID)
}

func TestReconcile_FencedAndPlainAreIdentical(t *testing.T) {
	known := []PromptAssignment{essayAssignment()}
	plain, err := ReconcileStudyPlan(essayResponse, known)
	require.NoError(t, err)

	fenced, err := ReconcileStudyPlan("```json\n"+essayResponse+"\n```", known)
	require.NoError(t, err)

	bare, err := ReconcileStudyPlan("```\n"+essayResponse+"\n```\n", known)
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, plain, bare)
}

func TestReconcile_TipWithBackticksSurvivesFences(t *testing.T) {
	raw := strings.Replace(essayResponse, `"Use an outline"`, "\"Wrap snippets in ```go blocks\"", 1)
	plan, err := ReconcileStudyPlan("```json\n"+raw+"\n```", []PromptAssignment{essayAssignment()})
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, []string{"Wrap snippets in ```go blocks"}, plan.Sessions[0].Tips)
}

func TestReconcile_TruncatedIsMalformed(t *testing.T) {
	truncated := essayResponse[:len(essayResponse)/2]
	_, err := ReconcileStudyPlan(truncated, []PromptAssignment{essayAssignment()})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestReconcile_NotJSONIsMalformed(t *testing.T) {
	_, err := ReconcileStudyPlan("Sorry, I cannot help with that.", nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestReconcile_ShapeErrorsAreMalformed(t *testing.T) {
	cases := map[string]string{
		"missing start date":    `{"endDate":"2024-01-03","sessions":[]}`,
		"unparseable end date":  `{"startDate":"2024-01-01","endDate":"next week","sessions":[]}`,
		"sessions not an array": `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":{"a":1}}`,
		"session without date":  `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[{"topic":"x"}]}`,
		"non-numeric duration":  `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[{"date":"2024-01-01","duration":"ninety"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReconcileStudyPlan(raw, nil)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestReconcile_Defaults(t *testing.T) {
	raw := `{"title":"   ","startDate":"2024-01-01","endDate":"2024-01-03","sessions":[
		{"assignmentTitle":"Essay","subjectName":"English","date":"2024-01-01"}
	]}`
	plan, err := ReconcileStudyPlan(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, "AI-Generated Study Plan", plan.Title)
	assert.Nil(t, plan.Insights)
	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, "", plan.Sessions[0].Description)
	assert.Equal(t, []string{}, plan.Sessions[0].Tips)
	assert.Equal(t, 0, plan.Sessions[0].DurationMin)
}

func TestReconcile_MissingSessionsIsEmptyPlan(t *testing.T) {
	plan, err := ReconcileStudyPlan(`{"startDate":"2024-01-01","endDate":"2024-01-07"}`, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Sessions)
	assert.NotNil(t, plan.Sessions)
}

func TestReconcile_LenientScalars(t *testing.T) {
	raw := `{"startDate":"2024-01-01T00:00:00Z","endDate":"2024-01-03","sessions":[
		{"date":"2024-01-02T09:00:00-05:00","duration":"45","tips":"Take breaks","topic":null}
	],"aiGeneratedInsights":{"recommendations":"Sleep well","estimatedTotalHours":"3.5"}}`
	plan, err := ReconcileStudyPlan(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), plan.StartDate)
	s := plan.Sessions[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, 45, s.DurationMin)
	assert.Equal(t, []string{"Take breaks"}, s.Tips)
	assert.Equal(t, "", s.Topic)
	require.NotNil(t, plan.Insights)
	assert.Equal(t, []string{"Sleep well"}, plan.Insights.Recommendations)
	assert.Equal(t, 3.5, plan.Insights.EstimatedTotalHours)
}

func TestReconcile_DurationRoundedToMinutes(t *testing.T) {
	raw := `{"startDate":"2024-01-01","endDate":"2024-01-03","sessions":[{"date":"2024-01-01","duration":89.6}]}`
	plan, err := ReconcileStudyPlan(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, plan.Sessions[0].DurationMin)
}
