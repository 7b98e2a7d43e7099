package httpapi

import (
	"net/http"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

type subjectInput struct {
	Name       *string `json:"name"`
	Code       *string `json:"code"`
	Instructor *string `json:"instructor"`
	Credits    *int    `json:"credits"`
	Color      *string `json:"color"`
}

func (in subjectInput) apply(s *domain.Subject) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Code != nil {
		s.Code = *in.Code
	}
	if in.Instructor != nil {
		s.Instructor = *in.Instructor
	}
	if in.Credits != nil {
		s.Credits = *in.Credits
	}
	if in.Color != nil {
		s.Color = *in.Color
	}
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.subjects.List(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]subjectView, 0, len(subjects))
	for _, subj := range subjects {
		views = append(views, toSubjectView(subj))
	}
	writeData(w, http.StatusOK, "", map[string]any{"subjects": views, "count": len(views)})
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) {
	var in subjectInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	subj := &domain.Subject{OwnerID: owner(r)}
	in.apply(subj)
	if err := s.subjects.Create(r.Context(), subj); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Subject created successfully", map[string]any{"subject": toSubjectView(subj)})
}

func (s *Server) getSubject(w http.ResponseWriter, r *http.Request) {
	subj, err := s.subjects.GetByID(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", map[string]any{"subject": toSubjectView(subj)})
}

func (s *Server) updateSubject(w http.ResponseWriter, r *http.Request) {
	var in subjectInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	subj, err := s.subjects.GetByID(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in.apply(subj)
	if err := s.subjects.Update(r.Context(), subj); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Subject updated successfully", map[string]any{"subject": toSubjectView(subj)})
}

func (s *Server) deleteSubject(w http.ResponseWriter, r *http.Request) {
	removed, err := s.subjects.Delete(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Subject and associated assignments deleted successfully",
		map[string]any{"assignmentsDeleted": removed})
}
