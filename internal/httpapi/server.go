package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/studybuddy/internal/auth"
	"github.com/alexanderramin/studybuddy/internal/service"
	"github.com/rs/cors"
)

// Deps carries the collaborators the HTTP surface needs.
type Deps struct {
	Subjects    service.SubjectService
	Assignments service.AssignmentService
	Plans       service.StudyPlanService
	Verifier    auth.Verifier
	Logger      *slog.Logger
	CORSOrigins []string
}

// Server exposes the JSON API under /api.
type Server struct {
	subjects    service.SubjectService
	assignments service.AssignmentService
	plans       service.StudyPlanService
	verifier    auth.Verifier
	logger      *slog.Logger
	corsOrigins []string
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = newDiscardLogger()
	}
	return &Server{
		subjects:    deps.Subjects,
		assignments: deps.Assignments,
		plans:       deps.Plans,
		verifier:    deps.Verifier,
		logger:      logger.With("component", "http"),
		corsOrigins: deps.CORSOrigins,
	}
}

// Handler returns the fully wrapped API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	protected := auth.RequireOwner(s.verifier, s.rejectUnauthenticated)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protected(h))
	}

	mux.HandleFunc("GET /api/health", s.health)

	handle("GET /api/subjects", s.listSubjects)
	handle("POST /api/subjects", s.createSubject)
	handle("GET /api/subjects/{id}", s.getSubject)
	handle("PUT /api/subjects/{id}", s.updateSubject)
	handle("DELETE /api/subjects/{id}", s.deleteSubject)

	handle("GET /api/assignments", s.listAssignments)
	handle("POST /api/assignments", s.createAssignment)
	handle("GET /api/assignments/{id}", s.getAssignment)
	handle("PUT /api/assignments/{id}", s.updateAssignment)
	handle("PATCH /api/assignments/{id}/progress", s.updateProgress)
	handle("DELETE /api/assignments/{id}", s.deleteAssignment)

	handle("POST /api/study-plans/generate", s.generateStudyPlan)
	handle("GET /api/study-plans", s.listStudyPlans)
	handle("GET /api/study-plans/{id}", s.getStudyPlan)
	handle("DELETE /api/study-plans/{id}", s.deleteStudyPlan)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return s.logRequests(c.Handler(mux))
}

// health is public. llmReachable is only reported for a configured
// provider and costs one short provider round trip.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok", "llm": "not_configured"}
	if s.plans != nil && s.plans.Configured() {
		body["llm"] = "configured"
		body["llmReachable"] = s.plans.Reachable(r.Context())
	}
	writeJSON(w, http.StatusOK, body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// owner returns the authenticated owner ID. The auth middleware guarantees
// it is present on protected routes.
func owner(r *http.Request) string {
	id, _ := auth.OwnerFromContext(r.Context())
	return id
}
