// Package httpapi serves the registry protocol over HTTP/JSON.
//
// The wire format mirrors the registry capability directly: a retrieve
// request answers {"identifier": "..."} or {"identifier": null} when the
// name is unregistered, and a generate request answers the identifier
// that won the read-or-create.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// Server exposes a registry over HTTP.
type Server struct {
	registry ports.Registry
	router   *mux.Router
	addr     string
}

// New creates a server for the given registry listening on addr.
func New(addr string, registry ports.Registry) *Server {
	s := &Server{
		registry: registry,
		addr:     addr,
	}

	r := mux.NewRouter()
	r.Use(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			m := httpsnoop.CaptureMetrics(handler, writer, request)
			slog.Info("handled", "method", request.Method, "url", request.URL, "duration", m.Duration, "status", m.Code)
		})
	})

	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(s.health)
	r.Methods(http.MethodGet).Path("/api/names").HandlerFunc(s.listNames)
	r.Methods(http.MethodGet).Path("/api/names/{name}/identifier").HandlerFunc(s.retrieveIdentifier)
	r.Methods(http.MethodPost).Path("/api/names/{name}/identifier").HandlerFunc(s.generateIdentifier)

	s.router = r
	return s
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("registry server listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down registry server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// identifierResponse is the wire shape of both registry operations.
// A nil Identifier encodes "absent".
type identifierResponse struct {
	Identifier *string `json:"identifier"`
}

// errorResponse is the wire shape of request failures.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) retrieveIdentifier(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	identifier, err := s.registry.Retrieve(r.Context(), name)
	switch {
	case errors.Is(err, domain.ErrNameNotFound):
		writeJSON(w, http.StatusOK, identifierResponse{Identifier: nil})
	case errors.Is(err, domain.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("retrieve failed", "name", name, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry unavailable"})
	default:
		writeJSON(w, http.StatusOK, identifierResponse{Identifier: &identifier})
	}
}

func (s *Server) generateIdentifier(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	identifier, err := s.registry.Generate(r.Context(), name)
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("generate failed", "name", name, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry unavailable"})
	default:
		writeJSON(w, http.StatusOK, identifierResponse{Identifier: &identifier})
	}
}

func (s *Server) listNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.registry.Names(r.Context())
	if err != nil {
		slog.Error("list names failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "registry unavailable"})
		return
	}

	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"names": names,
		"count": len(names),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
