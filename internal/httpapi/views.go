package httpapi

import (
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

const dateLayout = "2006-01-02"

type subjectView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Instructor string    `json:"instructor"`
	Credits    int       `json:"credits"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type subjectSummaryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Color string `json:"color"`
}

type assignmentView struct {
	ID             string                `json:"id"`
	Subject        *subjectSummaryView   `json:"subject"`
	SubjectID      string                `json:"subjectId"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Type           domain.AssignmentType `json:"type"`
	DueDate        time.Time             `json:"dueDate"`
	Priority       domain.Priority       `json:"priority"`
	EstimatedHours float64               `json:"estimatedHours"`
	Progress       int                   `json:"progress"`
	IsCompleted    bool                  `json:"isCompleted"`
	CompletedAt    *time.Time            `json:"completedAt"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type assignmentSummaryView struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	DueDate  time.Time       `json:"dueDate"`
	Priority domain.Priority `json:"priority"`
}

type sessionView struct {
	ID          string                 `json:"id"`
	Assignment  *assignmentSummaryView `json:"assignment"`
	Subject     *subjectSummaryView    `json:"subject"`
	Date        string                 `json:"date"`
	StartTime   string                 `json:"startTime"`
	EndTime     string                 `json:"endTime"`
	Duration    int                    `json:"duration"`
	Topic       string                 `json:"topic"`
	Description string                 `json:"description"`
	Tips        []string               `json:"tips"`
	IsCompleted bool                   `json:"isCompleted"`
}

type insightsView struct {
	Summary             string   `json:"summary"`
	Recommendations     []string `json:"recommendations"`
	EstimatedTotalHours float64  `json:"estimatedTotalHours"`
	PriorityFocus       string   `json:"priorityFocus"`
}

type studyPlanView struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate"`
	Sessions            []sessionView `json:"sessions"`
	AIGeneratedInsights *insightsView `json:"aiGeneratedInsights"`
	CreatedAt           time.Time     `json:"createdAt"`
}

func toSubjectView(s *domain.Subject) subjectView {
	return subjectView{
		ID:         s.ID,
		Name:       s.Name,
		Code:       s.Code,
		Instructor: s.Instructor,
		Credits:    s.Credits,
		Color:      s.Color,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toSubjectSummaryView(s *domain.SubjectSummary) *subjectSummaryView {
	if s == nil {
		return nil
	}
	return &subjectSummaryView{ID: s.ID, Name: s.Name, Code: s.Code, Color: s.Color}
}

func toAssignmentView(a *domain.Assignment) assignmentView {
	return assignmentView{
		ID:             a.ID,
		Subject:        toSubjectSummaryView(a.Subject),
		SubjectID:      a.SubjectID,
		Title:          a.Title,
		Description:    a.Description,
		Type:           a.Type,
		DueDate:        a.DueDate,
		Priority:       a.Priority,
		EstimatedHours: a.EstimatedHours,
		Progress:       a.Progress,
		IsCompleted:    a.IsCompleted,
		CompletedAt:    a.CompletedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toStudyPlanView(p *domain.StudyPlan) studyPlanView {
	v := studyPlanView{
		ID:        p.ID,
		Title:     p.Title,
		StartDate: p.StartDate.Format(dateLayout),
		EndDate:   p.EndDate.Format(dateLayout),
		Sessions:  make([]sessionView, 0, len(p.Sessions)),
		CreatedAt: p.CreatedAt,
	}
	for i := range p.Sessions {
		s := &p.Sessions[i]
		sv := sessionView{
			ID:          s.ID,
			Subject:     toSubjectSummaryView(s.Subject),
			Date:        s.Date.Format(dateLayout),
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Duration:    s.DurationMin,
			Topic:       s.Topic,
			Description: s.Description,
			Tips:        s.Tips,
			IsCompleted: s.IsCompleted,
		}
		if sv.Tips == nil {
			sv.Tips = []string{}
		}
		if s.Assignment != nil {
			sv.Assignment = &assignmentSummaryView{
				ID:       s.Assignment.ID,
				Title:    s.Assignment.Title,
				DueDate:  s.Assignment.DueDate,
				Priority: s.Assignment.Priority,
			}
		}
		v.Sessions = append(v.Sessions, sv)
	}
	if in := p.Insights; in != nil {
		v.AIGeneratedInsights = &insightsView{
			Summary:             in.Summary,
			Recommendations:     in.Recommendations,
			EstimatedTotalHours: in.EstimatedTotalHours,
			PriorityFocus:       in.PriorityFocus,
		}
		if v.AIGeneratedInsights.Recommendations == nil {
			v.AIGeneratedInsights.Recommendations = []string{}
		}
	}
	return v
}
