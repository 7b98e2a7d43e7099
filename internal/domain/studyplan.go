package domain

import "time"

// DefaultPlanTitle is used when the generated plan carries no title.
const DefaultPlanTitle = "AI-Generated Study Plan"

type StudyPlan struct {
	ID        string
	OwnerID   string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Sessions  []StudySession
	Insights  *PlanInsights
	CreatedAt time.Time
}

// StudySession is one scheduled block inside a plan. AssignmentID and
// SubjectID are nil when the generated entry could not be matched to a
// known assignment.
type StudySession struct {
	ID           string
	Position     int
	AssignmentID *string
	SubjectID    *string
	Date         time.Time
	StartTime    string
	EndTime      string
	DurationMin  int
	Topic        string
	Description  string
	Tips         []string
	IsCompleted  bool

	// Populated on read for display.
	Assignment *AssignmentSummary
	Subject    *SubjectSummary
}

type PlanInsights struct {
	Summary             string
	Recommendations     []string
	EstimatedTotalHours float64
	PriorityFocus       string
}

// Linked reports whether the session was matched to a known assignment.
func (s *StudySession) Linked() bool {
	return s.AssignmentID != nil
}

// TotalMinutes sums the scheduled duration of all sessions.
func (p *StudyPlan) TotalMinutes() int {
	total := 0
	for _, s := range p.Sessions {
		total += s.DurationMin
	}
	return total
}

// LinkedCount returns how many sessions reference a known assignment.
func (p *StudyPlan) LinkedCount() int {
	n := 0
	for i := range p.Sessions {
		if p.Sessions[i].Linked() {
			n++
		}
	}
	return n
}
