package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/pipeline"
	"github.com/matzehuels/nestview/pkg/render/scene"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// Request is the body of the POST routes.
type Request struct {
	Dataset       *nvio.Dataset          `json:"dataset"`
	Scope         string                 `json:"scope,omitempty"`
	Positions     map[string]model.Point `json:"positions,omitempty"`
	KeepLayout    bool                   `json:"keep_layout,omitempty"`
	Grid          *scene.Grid            `json:"grid,omitempty"`
	RankColumns   bool                   `json:"rank_columns,omitempty"`
	RightwardOnly bool                   `json:"rightward_only,omitempty"`
	Detailed      bool                   `json:"detailed,omitempty"`
	Tooltips      bool                   `json:"tooltips,omitempty"`
}

// options converts the request into pipeline options.
func (req *Request) options(cfg pipeline.Options) pipeline.Options {
	opts := cfg
	opts.Scope = req.Scope
	opts.Positions = req.Positions
	opts.KeepLayout = req.KeepLayout
	opts.Grid = req.Grid
	opts.RankColumns = opts.RankColumns || req.RankColumns
	opts.RightwardOnly = opts.RightwardOnly || req.RightwardOnly
	opts.Detailed = req.Detailed
	opts.Tooltips = req.Tooltips
	return opts
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID reuses the caller's X-Request-Id or assigns a fresh UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
