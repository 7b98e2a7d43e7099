package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/google/uuid"
)

// Syllabus is a converted import, ready for persistence. Assignments carry
// the generated ID of their subject.
type Syllabus struct {
	Subjects    []*domain.Subject
	Assignments []*domain.Assignment
}

// Convert transforms a validated ImportSchema into domain objects owned by
// ownerID. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, ownerID string, now time.Time) (*Syllabus, error) {
	now = now.UTC()
	out := &Syllabus{}

	for _, si := range schema.Subjects {
		subj := &domain.Subject{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			Name:       si.Name,
			Code:       si.Code,
			Instructor: si.Instructor,
			Color:      si.Color,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if si.Credits != nil {
			subj.Credits = *si.Credits
		}
		subj.Normalize()
		out.Subjects = append(out.Subjects, subj)

		for _, ai := range si.Assignments {
			due, err := time.Parse(dateLayout, ai.DueDate)
			if err != nil {
				return nil, fmt.Errorf("parsing due_date for %q: %w", ai.Title, err)
			}
			a := &domain.Assignment{
				ID:          uuid.New().String(),
				OwnerID:     ownerID,
				SubjectID:   subj.ID,
				Title:       ai.Title,
				Description: ai.Description,
				Type:        domain.AssignmentType(ai.Type),
				Priority:    domain.Priority(ai.Priority),
				DueDate:     due,
				CreatedAt:   now,
				UpdatedAt:   now,
				Subject:     subj.Summary(),
			}
			if ai.EstimatedHours != nil {
				a.EstimatedHours = *ai.EstimatedHours
			}
			if ai.Progress != nil {
				a.Progress = *ai.Progress
			}
			a.ApplyDefaults()
			a.SyncCompletion(now)
			out.Assignments = append(out.Assignments, a)
		}
	}

	return out, nil
}
