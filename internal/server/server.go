// Package server exposes the diagram pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                 liveness check
//	POST /api/v1/view             resolved view as node/edge JSON
//	POST /api/v1/render?format=   one rendered artifact (svg by default)
//
// Both POST routes take a [Request] body: a dataset plus the scope and
// layout options of the run. Errors are JSON objects carrying the error
// code; INVALID_* codes map to 400, NOT_FOUND and UNKNOWN_GROUP to 404,
// everything else to 500.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/nestview/pkg/buildinfo"
	"github.com/matzehuels/nestview/pkg/cache"
	"github.com/matzehuels/nestview/pkg/config"
	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/pipeline"
)

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	cfg     config.Config
	logger  *log.Logger
	started time.Time
	router  chi.Router
}

// KeyPrefix namespaces the artifacts the server writes to a shared cache.
const KeyPrefix = "serve:"

// New creates a server backed by a copy of runner whose cache keys carry
// [KeyPrefix]. The cache itself is shared by all requests.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	scoped := *runner
	scoped.Keyer = cache.NewScopedKeyer(runner.Keyer, KeyPrefix)
	s := &Server{
		runner:  &scoped,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, string(errors.ErrCodeNotFound), "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/view", s.handleView)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr, "version", buildinfo.Short())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request at info level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", requestIDFrom(r.Context()),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
