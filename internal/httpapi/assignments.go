package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/service"
)

type assignmentInput struct {
	Subject        *string  `json:"subject"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Type           *string  `json:"type"`
	DueDate        *string  `json:"dueDate"`
	Priority       *string  `json:"priority"`
	EstimatedHours *float64 `json:"estimatedHours"`
}

func (in assignmentInput) apply(a *domain.Assignment) error {
	if in.Subject != nil {
		a.SubjectID = *in.Subject
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Type != nil {
		a.Type = domain.AssignmentType(*in.Type)
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return err
		}
		a.DueDate = due
	}
	if in.Priority != nil {
		a.Priority = domain.Priority(*in.Priority)
	}
	if in.EstimatedHours != nil {
		a.EstimatedHours = *in.EstimatedHours
	}
	return nil
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dueDate %q must be YYYY-MM-DD or RFC 3339", service.ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AssignmentFilter{SubjectID: q.Get("subject")}
	switch status := q.Get("status"); status {
	case "", "all":
	default:
		filter.Status = domain.AssignmentStatus(status)
	}

	assignments, err := s.assignments.List(r.Context(), owner(r), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]assignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, toAssignmentView(a))
	}
	writeData(w, http.StatusOK, "", map[string]any{"assignments": views, "count": len(views)})
}

func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	var in assignmentInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	a := &domain.Assignment{OwnerID: owner(r)}
	if err := in.apply(a); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.assignments.Create(r.Context(), a); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Assignment created successfully", map[string]any{"assignment": toAssignmentView(a)})
}

func (s *Server) getAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := s.assignments.GetByID(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", map[string]any{"assignment": toAssignmentView(a)})
}

func (s *Server) updateAssignment(w http.ResponseWriter, r *http.Request) {
	var in assignmentInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.assignments.GetByID(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := in.apply(a); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.assignments.Update(r.Context(), a); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Assignment updated successfully", map[string]any{"assignment": toAssignmentView(a)})
}

func (s *Server) updateProgress(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Progress *int `json:"progress"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if in.Progress == nil {
		s.writeError(w, r, fmt.Errorf("%w: progress is required", service.ErrInvalidInput))
		return
	}
	a, err := s.assignments.UpdateProgress(r.Context(), owner(r), r.PathValue("id"), *in.Progress)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Progress updated successfully", map[string]any{"assignment": toAssignmentView(a)})
}

func (s *Server) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := s.assignments.Delete(r.Context(), owner(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Assignment deleted successfully", nil)
}
