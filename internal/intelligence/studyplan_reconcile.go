package intelligence

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/llm"
)

// ReconcileStudyPlan turns raw completion text into an unsaved StudyPlan.
// Code fences are stripped, the payload is decoded field by field, and each
// session is bound to the first entry of known whose title and subject name
// equal the session's exactly. Unmatched sessions are kept without
// references. Any parse failure is reported as ErrMalformedResponse.
func ReconcileStudyPlan(raw string, known []PromptAssignment) (*domain.StudyPlan, error) {
	wire, err := llm.ExtractJSON[studyPlanWire](raw, nil)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidOutput) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, err
	}

	start, err := parsePlanDate(string(wire.StartDate))
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", ErrMalformedResponse, err)
	}
	end, err := parsePlanDate(string(wire.EndDate))
	if err != nil {
		return nil, fmt.Errorf("%w: endDate: %v", ErrMalformedResponse, err)
	}

	plan := &domain.StudyPlan{
		Title:     strings.TrimSpace(string(wire.Title)),
		StartDate: start,
		EndDate:   end,
		Sessions:  make([]domain.StudySession, 0, len(wire.Sessions)),
	}
	if plan.Title == "" {
		plan.Title = domain.DefaultPlanTitle
	}

	for i, sw := range wire.Sessions {
		date, err := parsePlanDate(string(sw.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: sessions[%d].date: %v", ErrMalformedResponse, i, err)
		}
		session := domain.StudySession{
			Position:    i,
			Date:        date,
			StartTime:   string(sw.StartTime),
			EndTime:     string(sw.EndTime),
			DurationMin: int(math.Round(float64(sw.Duration))),
			Topic:       string(sw.Topic),
			Description: string(sw.Description),
			Tips:        []string(sw.Tips),
		}
		if session.Tips == nil {
			session.Tips = []string{}
		}
		if match := matchAssignment(known, string(sw.AssignmentTitle), string(sw.SubjectName)); match != nil {
			aid, sid := match.ID, match.SubjectID
			session.AssignmentID = &aid
			session.SubjectID = &sid
		}
		plan.Sessions = append(plan.Sessions, session)
	}

	if wire.Insights != nil {
		recs := []string(wire.Insights.Recommendations)
		if recs == nil {
			recs = []string{}
		}
		plan.Insights = &domain.PlanInsights{
			Summary:             string(wire.Insights.Summary),
			Recommendations:     recs,
			EstimatedTotalHours: float64(wire.Insights.EstimatedTotalHours),
			PriorityFocus:       string(wire.Insights.PriorityFocus),
		}
	}

	return plan, nil
}

// matchAssignment returns the first entry whose title and subject name both
// equal the given values exactly, or nil.
func matchAssignment(known []PromptAssignment, title, subjectName string) *PromptAssignment {
	for i := range known {
		if known[i].Title == title && known[i].SubjectName == subjectName {
			return &known[i]
		}
	}
	return nil
}

// parsePlanDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns the
// calendar date at midnight UTC.
func parsePlanDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
