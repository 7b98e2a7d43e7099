package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/stretchr/testify/assert"
)

func samplePlan() *domain.StudyPlan {
	aid, sid := "asg-1", "subj-1"
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.StudyPlan{
		ID:        "0123456789abcdef",
		Title:     "Finals push",
		StartDate: day1,
		EndDate:   day1.AddDate(0, 0, 2),
		Sessions: []domain.StudySession{
			{
				AssignmentID: &aid, SubjectID: &sid, Date: day1,
				StartTime: "9:00 AM", EndTime: "10:30 AM", DurationMin: 90, Topic: "Outline",
				Tips:       []string{"Use an outline"},
				Assignment: &domain.AssignmentSummary{ID: aid, Title: "Essay"},
				Subject:    &domain.SubjectSummary{ID: sid, Name: "English", Color: "#6366f1"},
			},
			{Date: day1.AddDate(0, 0, 1), DurationMin: 30, Topic: "Flashcards"},
		},
		Insights: &domain.PlanInsights{
			Summary:             "Front-load the essay.",
			Recommendations:     []string{"Sleep well"},
			EstimatedTotalHours: 2,
			PriorityFocus:       "Essay",
		},
	}
}

func TestFormatStudyPlan(t *testing.T) {
	out := FormatStudyPlan(samplePlan())

	assert.Contains(t, out, "Finals push")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "2h scheduled")
	assert.Contains(t, out, "MON JAN 1")
	assert.Contains(t, out, "TUE JAN 2")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "tip: Use an outline")
	assert.Contains(t, out, "(unlinked)")
	assert.Contains(t, out, "anytime")
	assert.Contains(t, out, "Front-load the essay.")
	assert.Contains(t, out, "Sleep well")
}

func TestFormatStudyPlan_MarksCompletedSessions(t *testing.T) {
	p := samplePlan()
	assert.NotContains(t, FormatStudyPlan(p), "done")

	p.Sessions[1].IsCompleted = true
	assert.Contains(t, FormatStudyPlan(p), "done")
}

func TestFormatStudyPlan_NoInsights(t *testing.T) {
	p := samplePlan()
	p.Insights = nil
	assert.NotContains(t, FormatStudyPlan(p), "INSIGHTS")
}

func TestFormatStudyPlanList(t *testing.T) {
	out := FormatStudyPlanList([]*domain.StudyPlan{samplePlan()})
	assert.Contains(t, out, "STUDY PLANS")
	assert.Contains(t, out, "Finals push")
	assert.Contains(t, out, "2 (1 linked)")
}

func TestFormatAssignmentList(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out := FormatAssignmentList([]*domain.Assignment{{
		ID: "asg-1", Title: "Essay", Type: domain.TypeProject, Priority: domain.PriorityHigh,
		DueDate: now.AddDate(0, 0, 3), Progress: 40,
		Subject: &domain.SubjectSummary{Name: "English", Color: "#6366f1"},
	}}, now)

	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "In 3d")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, " 40%")
}

func TestFormatSubjectList(t *testing.T) {
	out := FormatSubjectList([]*domain.Subject{{ID: "subj-1", Name: "English", Code: "EN101", Credits: 3}})
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "EN101")
	assert.Contains(t, out, "--")
}
