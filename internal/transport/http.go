package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/resource"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ProjectService lists known projects.
type ProjectService interface {
	List(ctx context.Context) ([]project.Summary, error)
}

// Options configures the HTTP server.
type Options struct {
	// StrictStatus reports client-input errors as 400 and unknown ids as
	// 404 instead of 200. Payloads are the same either way.
	StrictStatus bool
	Logger       *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	issues   *resource.Issues
	projects ProjectService
	opts     Options
}

// NewServer creates an HTTP server router with middleware.
func NewServer(issues resource.IssueService, projects ProjectService, opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(opts.Logger))
	r.Use(middleware.Recoverer)

	srv := &Server{
		issues:   resource.NewIssues(issues),
		projects: projects,
		opts:     opts,
	}

	r.Get("/health", srv.handleHealth)
	r.Get("/api/projects", srv.handleProjects)
	r.Route("/api/issues/{project}", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Post("/", srv.handleCreate)
		r.Put("/", srv.handleUpdate)
		r.Delete("/", srv.handleDelete)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.projects.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := s.issues.List(r.Context(), chi.URLParam(r, "project"), queryParams(r))
	s.respond(w, r, out, err)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	out, err := s.issues.Create(r.Context(), chi.URLParam(r, "project"), decodeFields(r))
	s.respond(w, r, out, err)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	out, err := s.issues.Update(r.Context(), chi.URLParam(r, "project"), decodeFields(r))
	s.respond(w, r, out, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := s.issues.Delete(r.Context(), chi.URLParam(r, "project"), decodeFields(r))
	s.respond(w, r, out, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, out resource.Outcome, err error) {
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, statusFor(out.Kind, s.opts.StrictStatus), out.Body)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, resource.ErrorBody{Error: err.Error()})
}
