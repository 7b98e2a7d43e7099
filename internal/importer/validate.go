package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	if len(schema.Subjects) == 0 {
		return []error{fmt.Errorf("subjects: at least one subject is required")}
	}

	var errs []error
	seenNames := make(map[string]bool)
	for i := range schema.Subjects {
		s := &schema.Subjects[i]
		path := fmt.Sprintf("subjects[%d]", i)
		errs = append(errs, validateSubject(path, s)...)
		if s.Name != "" {
			if seenNames[s.Name] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate subject %q", path, s.Name))
			}
			seenNames[s.Name] = true
		}
		for j := range s.Assignments {
			errs = append(errs, validateAssignment(fmt.Sprintf("%s.assignments[%d]", path, j), &s.Assignments[j])...)
		}
	}
	return errs
}

func validateSubject(path string, s *SubjectImport) []error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", path))
	}
	if s.Credits != nil && (*s.Credits < 0 || *s.Credits > 10) {
		errs = append(errs, fmt.Errorf("%s.credits: must be between 0 and 10, got %d", path, *s.Credits))
	}
	if s.Color != "" {
		check := domain.Subject{Name: "check", Color: s.Color}
		if err := check.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s.color: %w", path, err))
		}
	}

	return errs
}

func validateAssignment(path string, a *AssignmentImport) []error {
	var errs []error

	if a.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if a.DueDate == "" {
		errs = append(errs, fmt.Errorf("%s.due_date is required", path))
	} else if _, err := time.Parse(dateLayout, a.DueDate); err != nil {
		errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", path, a.DueDate))
	}
	if a.Type != "" && !domain.ValidAssignmentTypes[domain.AssignmentType(a.Type)] {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", path, a.Type))
	}
	if a.Priority != "" && !domain.ValidPriorities[domain.Priority(a.Priority)] {
		errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", path, a.Priority))
	}
	if h := a.EstimatedHours; h != nil && (*h < domain.MinEstimatedHours || *h > domain.MaxEstimatedHours) {
		errs = append(errs, fmt.Errorf("%s.estimated_hours: must be between %.1f and %.0f, got %g",
			path, domain.MinEstimatedHours, domain.MaxEstimatedHours, *h))
	}
	if a.Progress != nil {
		if err := domain.ValidateProgress(*a.Progress); err != nil {
			errs = append(errs, fmt.Errorf("%s.progress: %w", path, err))
		}
	}

	return errs
}
