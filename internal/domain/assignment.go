package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultEstimatedHours = 2.0
	MinEstimatedHours     = 0.5
	MaxEstimatedHours     = 100.0
)

type Assignment struct {
	ID             string
	OwnerID        string
	SubjectID      string
	Title          string
	Description    string
	Type           AssignmentType
	DueDate        time.Time
	Priority       Priority
	EstimatedHours float64
	Progress       int
	IsCompleted    bool
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Subject is populated on read; nil when the subject no longer exists.
	Subject *SubjectSummary
}

// AssignmentSummary is the display projection of an assignment attached to
// study sessions on read.
type AssignmentSummary struct {
	ID       string
	Title    string
	DueDate  time.Time
	Priority Priority
}

// ApplyDefaults fills the optional fields the way a newly created
// assignment expects them.
func (a *Assignment) ApplyDefaults() {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	if a.Type == "" {
		a.Type = TypeHomework
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.EstimatedHours == 0 {
		a.EstimatedHours = DefaultEstimatedHours
	}
}

// Validate checks required fields, enumerations and ranges.
func (a *Assignment) Validate() error {
	if a.SubjectID == "" {
		return fmt.Errorf("subject is required")
	}
	if a.Title == "" {
		return fmt.Errorf("assignment title is required")
	}
	if a.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	if !ValidAssignmentTypes[a.Type] {
		return fmt.Errorf("invalid assignment type %q", a.Type)
	}
	if !ValidPriorities[a.Priority] {
		return fmt.Errorf("invalid priority %q", a.Priority)
	}
	if a.EstimatedHours < MinEstimatedHours || a.EstimatedHours > MaxEstimatedHours {
		return fmt.Errorf("estimated hours must be between %.1f and %.0f, got %g",
			MinEstimatedHours, MaxEstimatedHours, a.EstimatedHours)
	}
	return ValidateProgress(a.Progress)
}

// ValidateProgress checks that a progress value is a percentage.
func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}
	return nil
}

// SyncCompletion derives the completion flag and timestamp from Progress.
// Progress >= 100 marks the assignment complete, stamping CompletedAt with
// now unless it was already complete; anything lower clears both.
func (a *Assignment) SyncCompletion(now time.Time) {
	if a.Progress >= 100 {
		if !a.IsCompleted || a.CompletedAt == nil {
			a.IsCompleted = true
			a.CompletedAt = &now
		}
		return
	}
	a.IsCompleted = false
	a.CompletedAt = nil
}

// SetProgress records a new progress value and re-derives completion.
func (a *Assignment) SetProgress(progress int, now time.Time) error {
	if err := ValidateProgress(progress); err != nil {
		return err
	}
	a.Progress = progress
	a.SyncCompletion(now)
	a.UpdatedAt = now
	return nil
}

// SubjectName returns the populated subject's name, or "" when the
// assignment was read without one.
func (a *Assignment) SubjectName() string {
	if a.Subject == nil {
		return ""
	}
	return a.Subject.Name
}

// Summary returns the display projection of a.
func (a *Assignment) Summary() *AssignmentSummary {
	return &AssignmentSummary{ID: a.ID, Title: a.Title, DueDate: a.DueDate, Priority: a.Priority}
}
