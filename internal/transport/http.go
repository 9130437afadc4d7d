package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/domain/session"
)

// maxUploadBytes caps raw audio upload bodies (the recorder client sends
// whole takes in one request).
const maxUploadBytes = 200 << 20

// SessionService handles session requests end to end.
type SessionService interface {
	Create(ctx context.Context, cfg map[string]any) (*session.CreateResult, error)
	Get(ctx context.Context, sessionID string) (*session.Session, error)
	Patch(ctx context.Context, projectName, sessionID string, patch session.Patch) (*session.Session, error)
	Upload(ctx context.Context, sessionID, itemCode string, data []byte) (*recfile.Recfile, error)
}

// ProjectService resolves projects, creating them on first access.
type ProjectService interface {
	Ensure(ctx context.Context, name string) (*project.Project, error)
}

// ScriptService resolves scripts.
type ScriptService interface {
	Get(ctx context.Context, scriptID string) (*script.Script, error)
}

// RecfileService lists recfiles for a session.
type RecfileService interface {
	List(ctx context.Context, projectName, sessionID string) ([]recfile.Recfile, error)
}

// ResourceService resolves stored binary assets.
type ResourceService interface {
	Get(ctx context.Context, projectName, name string) (*resource.Resource, error)
}

// Services bundles everything the HTTP surface needs.
type Services struct {
	Sessions  SessionService
	Projects  ProjectService
	Scripts   ScriptService
	Recfiles  RecfileService
	Resources ResourceService
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the HTTP router for the recording server.
func NewRouter(svc Services, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/session/{sessionID}", srv.getSession)
	r.Post("/session/new", srv.createSession)
	r.Get("/project/{projectName}", srv.getProject)
	r.Get("/script/{scriptID}", srv.getScript)
	r.Get("/project/{projectName}/session/{sessionID}/recfile", srv.listRecfiles)
	r.Get("/project/{projectName}/resources/images/{imageFile}", srv.getImage)
	r.Post("/session/{sessionID}/recfile/{itemCode}", srv.uploadRecfile)
	r.Patch("/project/{projectName}/session/{sessionID}", srv.patchSession)

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info(r.Method+" "+r.URL.Path, "remote", r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, sess)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var cfg map[string]any
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid session config", http.StatusBadRequest)
		return
	}

	result, err := s.svc.Sessions.Create(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// The recorder client expects the project document back here; the
	// created session is fetched separately by id.
	s.writeJSON(w, result.Project)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Projects.Ensure(r.Context(), chi.URLParam(r, "projectName"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, proj)
}

func (s *Server) getScript(w http.ResponseWriter, r *http.Request) {
	scr, err := s.svc.Scripts.Get(r.Context(), chi.URLParam(r, "scriptID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, scr.Document)
}

func (s *Server) listRecfiles(w http.ResponseWriter, r *http.Request) {
	recs, err := s.svc.Recfiles.List(r.Context(),
		chi.URLParam(r, "projectName"), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []recfile.Recfile{}
	}
	s.writeJSON(w, recs)
}

func (s *Server) getImage(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Resources.Get(r.Context(),
		chi.URLParam(r, "projectName"), chi.URLParam(r, "imageFile"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(res.Data)
	if err != nil {
		s.logger.Error("stored resource is not valid base64", "resource", res.Name, "error", err)
		http.Error(w, "corrupt resource", http.StatusInternalServerError)
		return
	}

	if res.MimeType != "" {
		w.Header().Set("Content-Type", res.MimeType)
	}
	w.Write(data)
}

func (s *Server) uploadRecfile(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, "failed to read audio body", http.StatusBadRequest)
		return
	}

	_, err = s.svc.Sessions.Upload(r.Context(),
		chi.URLParam(r, "sessionID"), chi.URLParam(r, "itemCode"), data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) patchSession(w http.ResponseWriter, r *http.Request) {
	var patch session.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid patch body", http.StatusBadRequest)
		return
	}

	_, err := s.svc.Sessions.Patch(r.Context(),
		chi.URLParam(r, "projectName"), chi.URLParam(r, "sessionID"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, script.ErrScriptNotFound),
		errors.Is(err, resource.ErrResourceNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, recfile.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
