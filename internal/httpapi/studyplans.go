package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/studybuddy/internal/service"
)

// generateStudyPlan runs detached from the request context so a client
// hanging up does not abort the completion call or the write.
func (s *Server) generateStudyPlan(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	plan, err := s.plans.Generate(ctx, owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Study plan generated successfully", map[string]any{"studyPlan": toStudyPlanView(plan)})
}

func (s *Server) listStudyPlans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, fmt.Errorf("%w: limit must be a positive integer", service.ErrInvalidInput))
			return
		}
		limit = n
	}
	plans, err := s.plans.ListRecent(r.Context(), owner(r), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	views := make([]studyPlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, toStudyPlanView(p))
	}
	writeData(w, http.StatusOK, "", map[string]any{"studyPlans": views, "count": len(views)})
}

func (s *Server) getStudyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.GetByID(r.Context(), owner(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", map[string]any{"studyPlan": toStudyPlanView(plan)})
}

func (s *Server) deleteStudyPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.Delete(r.Context(), owner(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Study plan deleted successfully", nil)
}
