package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/matzehuels/nestview/pkg/buildinfo"
	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/pipeline"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// Response headers set by the render route.
const (
	RunIDHeader = "X-Nestview-Run-Id"
	CacheHeader = "X-Nestview-Cache"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// ViewResponse is the body of POST /api/v1/view.
type ViewResponse struct {
	RunID    string               `json:"run_id"`
	Scope    string               `json:"scope"`
	Graph    graph.Graph          `json:"graph"`
	Dropped  []visibility.Dropped `json:"dropped"`
	Warnings []string             `json:"warnings"`
	Stats    ViewStats            `json:"stats"`
}

// ViewStats summarizes the resolved view.
type ViewStats struct {
	Nodes   int `json:"nodes"`
	Edges   int `json:"edges"`
	Handles int `json:"handles"`
	Dropped int `json:"dropped"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "nestview",
		Version:   buildinfo.Short(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	res, err := s.runner.View(r.Context(), req.Dataset, req.options(s.baseOptions()))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	dropped := res.View.Dropped
	if dropped == nil {
		dropped = []visibility.Dropped{}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, ViewResponse{
		RunID:    res.RunID,
		Scope:    res.View.Scope,
		Graph:    res.Nodelink,
		Dropped:  dropped,
		Warnings: warnings,
		Stats: ViewStats{
			Nodes:   res.Stats.NodeCount,
			Edges:   res.Stats.EdgeCount,
			Handles: res.Stats.HandleCount,
			Dropped: res.Stats.DroppedCount,
		},
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeErr(w, r, err)
		return
	}

	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	opts := req.options(s.baseOptions())
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), req.Dataset, opts)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(RunIDHeader, res.RunID)
	w.Header().Set(CacheHeader, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// readRequest decodes the body, writing the error response itself when
// decoding fails.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body too large")
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "read request body: "+err.Error())
		return nil, false
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return nil, false
	}
	if req.Dataset == nil {
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "dataset is required")
		return nil, false
	}
	return &req, true
}

func (s *Server) baseOptions() pipeline.Options {
	return pipeline.Options{
		Config: s.cfg,
		Logger: s.logger,
	}
}
