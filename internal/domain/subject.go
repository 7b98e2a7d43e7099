package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultSubjectColor is applied when a subject is created without a color.
const DefaultSubjectColor = "#6366f1"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Subject struct {
	ID         string
	OwnerID    string
	Name       string
	Code       string
	Instructor string
	Credits    int
	Color      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SubjectSummary is the display projection of a subject attached to
// assignments and study sessions on read.
type SubjectSummary struct {
	ID    string
	Name  string
	Code  string
	Color string
}

// Normalize trims free-text fields, upper-cases the code and fills in the
// default color.
func (s *Subject) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	s.Instructor = strings.TrimSpace(s.Instructor)
	if s.Color == "" {
		s.Color = DefaultSubjectColor
	}
}

// Validate checks the fields the data model constrains.
func (s *Subject) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("subject name is required")
	}
	if s.Credits < 0 || s.Credits > 10 {
		return fmt.Errorf("credits must be between 0 and 10, got %d", s.Credits)
	}
	if !hexColorPattern.MatchString(s.Color) {
		return fmt.Errorf("color %q must be a hex color like #6366f1", s.Color)
	}
	return nil
}

// Summary returns the display projection of s.
func (s *Subject) Summary() *SubjectSummary {
	return &SubjectSummary{ID: s.ID, Name: s.Name, Code: s.Code, Color: s.Color}
}
