package testutil

import (
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/google/uuid"
)

// Subject options
type SubjectOption func(*domain.Subject)

func WithCode(code string) SubjectOption {
	return func(s *domain.Subject) {
		s.Code = code
	}
}

func WithColor(color string) SubjectOption {
	return func(s *domain.Subject) {
		s.Color = color
	}
}

func WithCredits(c int) SubjectOption {
	return func(s *domain.Subject) {
		s.Credits = c
	}
}

func WithSubjectCreatedAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.CreatedAt = t
		s.UpdatedAt = t
	}
}

func NewTestSubject(ownerID, name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC()
	s := &domain.Subject{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Color:     domain.DefaultSubjectColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithDueDate(d time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.DueDate = d
	}
}

func WithPriority(p domain.Priority) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Priority = p
	}
}

func WithAssignmentType(t domain.AssignmentType) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Type = t
	}
}

func WithEstimatedHours(h float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.EstimatedHours = h
	}
}

func WithProgress(p int) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Progress = p
	}
}

func WithDescription(d string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Description = d
	}
}

func NewTestAssignment(ownerID, subjectID, title string, opts ...AssignmentOption) *domain.Assignment {
	now := time.Now().UTC()
	a := &domain.Assignment{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		SubjectID:      subjectID,
		Title:          title,
		Type:           domain.TypeHomework,
		DueDate:        now.AddDate(0, 0, 7),
		Priority:       domain.PriorityMedium,
		EstimatedHours: domain.DefaultEstimatedHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StudyPlan options
type PlanOption func(*domain.StudyPlan)

func WithPlanTitle(title string) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Title = title
	}
}

func WithPlanCreatedAt(t time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.CreatedAt = t
	}
}

func WithSessions(sessions ...domain.StudySession) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Sessions = sessions
	}
}

func WithInsights(in *domain.PlanInsights) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Insights = in
	}
}

func NewTestStudyPlan(ownerID string, opts ...PlanOption) *domain.StudyPlan {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	p := &domain.StudyPlan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     domain.DefaultPlanTitle,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
		Sessions:  []domain.StudySession{},
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StudySession options
type SessionOption func(*domain.StudySession)

// WithLinkedAssignment binds the session to a and its subject.
func WithLinkedAssignment(a *domain.Assignment) SessionOption {
	return func(s *domain.StudySession) {
		aid, sid := a.ID, a.SubjectID
		s.AssignmentID = &aid
		s.SubjectID = &sid
	}
}

func WithTips(tips ...string) SessionOption {
	return func(s *domain.StudySession) {
		s.Tips = tips
	}
}

func WithSessionCompleted() SessionOption {
	return func(s *domain.StudySession) {
		s.IsCompleted = true
	}
}

func NewTestSession(date time.Time, durationMin int, opts ...SessionOption) domain.StudySession {
	s := domain.StudySession{
		ID:          uuid.New().String(),
		Date:        date,
		StartTime:   "09:00",
		EndTime:     "10:00",
		DurationMin: durationMin,
		Topic:       "Review",
		Tips:        []string{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
