// Package server exposes formulae over HTTP.
//
// Every request rebuilds the formulae from the dependency cache, so a running
// server picks up a new "bowerassets install" without a restart.
//
//	GET /healthz          liveness probe
//	GET /formulae         every formula, keyed by name
//	GET /formulae/{name}  a single formula
//
// Errors are returned as JSON carrying the error code:
//
//	{"error": {"code": "RESOLUTION_NOT_READY", "message": "...", "request_id": "..."}}
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bowerassets/pkg/buildinfo"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
)

// ContentSource builds the formulae served by the server.
// *formula.Resource satisfies it.
type ContentSource interface {
	Content(ctx context.Context) (formula.Formulae, error)
}

// Server serves formulae over HTTP.
type Server struct {
	source ContentSource
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger falls back to log.Default().
func New(source ContentSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{source: source, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/formulae", s.handleFormulae)
	r.Get("/formulae/{name}", s.handleFormula)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, errors.New(errors.ErrCodeInvalidPath, "no route for %s", r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving formulae", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleFormulae(w http.ResponseWriter, r *http.Request) {
	formulae, err := s.source.Content(r.Context())
	if err != nil {
		s.writeError(w, r, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, formulae)
}

func (s *Server) handleFormula(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	formulae, err := s.source.Content(r.Context())
	if err != nil {
		s.writeError(w, r, StatusFor(err), err)
		return
	}
	f, ok := formulae[name]
	if !ok {
		err := errors.New(errors.ErrCodeFormulaNotFound, "formula %q does not exist", name)
		s.writeError(w, r, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, formulaResponse{
		Name:    name,
		Inputs:  f.Files,
		Filters: f.Filters,
		Options: f.Options,
	})
}

type formulaResponse struct {
	Name    string         `json:"name"`
	Inputs  []string       `json:"inputs"`
	Filters []string       `json:"filters"`
	Options map[string]any `json:"options"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// StatusFor maps an error to the HTTP status it is served with.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFormulaNotFound, errors.ErrCodeManifestNotFound, errors.ErrCodeInvalidPath:
		return http.StatusNotFound
	case errors.ErrCodeResolutionNotReady:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", id, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: id,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
