package server

import (
	"net/http"
	"strings"

	"github.com/matzehuels/funnelchart/pkg/buildinfo"
	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/httputil"
	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

// Cache status header values.
const (
	headerCache = "X-Cache"
	cacheHit    = "hit"
	cacheMiss   = "miss"
)

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// layoutResponse is the body of POST /v1/layout.
type layoutResponse struct {
	Layout funnel.Result `json:"layout"`
	Cached bool          `json:"cached"`
}

// renderResponse is the body of POST /v1/render when several formats are
// requested. Artifacts are base64 encoded by encoding/json.
type renderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     renderStats       `json:"stats"`
}

type renderStats struct {
	Slices      int  `json:"slices"`
	SideLabels  int  `json:"side_labels"`
	Passes      int  `json:"passes"`
	LayoutCache bool `json:"layout_cached"`
	RenderCache bool `json:"render_cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	def, err := pipeline.LoadDefinition(opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	layout, hit, err := s.runner.ComputeLayout(ctx, def, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set(headerCache, cacheStatus(hit))
	_ = httputil.WriteJSON(w, http.StatusOK, layoutResponse{Layout: layout, Cached: hit})
}

// handleRender renders the chart. A single format is returned as the raw
// artifact; several formats are returned together as JSON. The "format"
// query parameter, comma-separated, overrides the body's formats.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if q := r.URL.Query().Get("format"); q != "" {
		opts.Formats = splitFormats(q)
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	hit := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	w.Header().Set(headerCache, cacheStatus(hit))
	if len(result.Artifacts) == 1 {
		for format, data := range result.Artifacts {
			_ = httputil.WriteBlob(w, format, data)
		}
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, renderResponse{
		Artifacts: result.Artifacts,
		Stats: renderStats{
			Slices:      result.Stats.Slices,
			SideLabels:  result.Stats.SideLabels,
			Passes:      result.Stats.Passes,
			LayoutCache: result.CacheInfo.LayoutHit,
			RenderCache: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, errors.New(errors.ErrCodeFileNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorBody{
		Code:    errors.ErrCodeUnsupported,
		Message: r.Method + " is not allowed on " + r.URL.Path,
	})
}

// decodeOptions reads pipeline options from the body. Charts must be sent
// inline; the server never reads files on behalf of a client.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := httputil.DecodeJSON(r, &opts); err != nil {
		return opts, err
	}
	if opts.Input != "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "input paths are not accepted, send the chart as \"definition\"")
	}
	if opts.Definition == nil {
		return opts, errors.New(errors.ErrCodeInvalidInput, "chart definition is required")
	}
	opts.Logger = s.requestLog(r.Context())
	return opts, nil
}

// fail writes err as JSON. Client errors are logged at debug level.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	logger := s.requestLog(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err)
		return
	}
	logger.Debug("rejected request", "status", status, "error", err)
}

func cacheStatus(hit bool) string {
	if hit {
		return cacheHit
	}
	return cacheMiss
}

func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
