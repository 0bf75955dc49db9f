package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
)

// ProjectService defines project operations needed by the API.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.ProjectSummary, error)
}

// MockDataService defines mock data operations needed by the API.
type MockDataService interface {
	Create(ctx context.Context, p mockdata.Payload) (*mockdata.Record, error)
	Update(ctx context.Context, id int64, p mockdata.Payload) (*mockdata.Record, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, projectID string) ([]mockdata.Record, error)
	Match(ctx context.Context, projectID, method, path string) (*mockdata.Record, error)
}

// Config wires the HTTP server.
type Config struct {
	Projects ProjectService
	MockData MockDataService
	// Token protects /mock/api when set.
	Token  string
	Logger *slog.Logger
}

// Server serves the management API and the mocks themselves.
type Server struct {
	projects ProjectService
	mockData MockDataService
	logger   *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{
		projects: cfg.Projects,
		mockData: cfg.MockData,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/mock/api", func(r chi.Router) {
		if cfg.Token != "" {
			r.Use(TokenMiddleware(cfg.Token))
		}
		r.Get("/prj", srv.listProjects)
		r.Post("/prj", srv.createProject)
		r.Get("/prj/{projectID}", srv.getProject)
		r.Get("/prj/{projectID}/list", srv.listMockData)
		r.Post("/data", srv.createMockData)
		r.Put("/data/{id}", srv.updateMockData)
		r.Delete("/data/{id}", srv.deleteMockData)
	})

	r.HandleFunc("/mock/{projectID}/*", srv.serveMock)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type projectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

func (p *projectRequest) Bind(*http.Request) error { return nil }

type payloadRequest struct {
	mockdata.Payload
}

func (p *payloadRequest) Bind(*http.Request) error { return nil }

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	req := &projectRequest{}
	if err := render.Bind(r, req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	proj, err := s.projects.Create(r.Context(), project.CreateRequest{
		ID:          req.ID,
		Name:        req.Name,
		Path:        req.Path,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusCreated, proj)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusOK, proj)
}

func (s *Server) listMockData(w http.ResponseWriter, r *http.Request) {
	recs, err := s.mockData.List(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusOK, recs)
}

func (s *Server) createMockData(w http.ResponseWriter, r *http.Request) {
	req := &payloadRequest{}
	if err := render.Bind(r, req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := s.mockData.Create(r.Context(), req.Payload)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusCreated, rec)
}

func (s *Server) updateMockData(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req := &payloadRequest{}
	if err := render.Bind(r, req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := s.mockData.Update(r.Context(), id, req.Payload)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusOK, rec)
}

func (s *Server) deleteMockData(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.mockData.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	WriteData(w, r, http.StatusOK, nil)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid mock data id")
		return 0, false
	}
	return id, true
}

// serveMock answers /mock/{projectID}{projectPath}{recordPath} with the
// matching record's response after its delay.
func (s *Server) serveMock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	proj, err := s.projects.Get(ctx, chi.URLParam(r, "projectID"))
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	rest, ok := stripProjectPath("/"+chi.URLParam(r, "*"), proj.Path)
	if !ok {
		writeDomainError(w, r, s.logger, mockdata.ErrNoMatch)
		return
	}

	rec, err := s.mockData.Match(ctx, proj.ID, r.Method, rest)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}

	if rec.Delay > 0 {
		timer := time.NewTimer(time.Duration(rec.Delay) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
	}

	contentType := rec.ContentType
	if contentType == "" {
		contentType = mockdata.DefaultContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, rec.Response)
	}
}

// stripProjectPath removes prefix from p on a segment boundary.
func stripProjectPath(p, prefix string) (string, bool) {
	if prefix == "" {
		return p, true
	}
	rest, found := strings.CutPrefix(p, prefix)
	if !found || !strings.HasPrefix(rest, "/") {
		return "", false
	}
	return rest, true
}

