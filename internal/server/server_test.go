package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/funnelchart/pkg/cache"
	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/httputil"
	"github.com/matzehuels/funnelchart/pkg/observability"
	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

const testChart = `{
	"definition": {
		"title": "Q3 pipeline",
		"series": [
			{"key": "Leads", "value": 1200},
			{"key": "Qualified", "value": 430},
			{"key": "Won", "value": 90}
		]
	}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(fc, nil, logger), logger)
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.GoVersion == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s.Handler(), "/v1/layout", testChart)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get(headerCache); got != cacheMiss {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	var body layoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Layout.Slices) != 3 {
		t.Errorf("slices = %d, want 3", len(body.Layout.Slices))
	}
	if body.Cached {
		t.Error("first layout should not be cached")
	}

	rec = post(t, s.Handler(), "/v1/layout", testChart)
	if got := rec.Header().Get(headerCache); got != cacheHit {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestRenderSingleFormat(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s.Handler(), "/v1/render?format=svg", testChart)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("body is not an SVG document")
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Q3 pipeline")) {
		t.Error("SVG missing chart title")
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s.Handler(), "/v1/render?format=svg,%20JSON", testChart)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var body renderResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(body.Artifacts))
	}
	if !json.Valid(body.Artifacts["json"]) {
		t.Error("json artifact is not valid JSON")
	}
	if body.Stats.Slices != 3 {
		t.Errorf("stats.slices = %d, want 3", body.Stats.Slices)
	}
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		wantErr  errors.Code
	}{
		{
			name:     "file input refused",
			target:   "/v1/render",
			body:     `{"input": "/etc/passwd"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  errors.ErrCodeInvalidInput,
		},
		{
			name:     "missing definition",
			target:   "/v1/layout",
			body:     `{"width": 400}`,
			wantCode: http.StatusBadRequest,
			wantErr:  errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown field",
			target:   "/v1/layout",
			body:     `{"definitoin": {}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  errors.ErrCodeInvalidInput,
		},
		{
			name:     "bad format",
			target:   "/v1/render?format=gif",
			body:     testChart,
			wantCode: http.StatusBadRequest,
			wantErr:  errors.ErrCodeInvalidFormat,
		},
		{
			name:     "slope out of range",
			target:   "/v1/layout",
			body:     `{"slope": 0.6, "definition": {"series": [{"key": "a", "value": 1}]}}`,
			wantCode: http.StatusBadRequest,
			wantErr:  errors.ErrCodeInvalidConfig,
		},
		{
			name:     "unknown route",
			target:   "/v1/charts",
			body:     testChart,
			wantCode: http.StatusNotFound,
			wantErr:  errors.ErrCodeFileNotFound,
		},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s.Handler(), tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body)
			}
			var body httputil.ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantErr {
				t.Errorf("code = %s, want %s", body.Code, tt.wantErr)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/render", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)
	given := uuid.NewString()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client uuid kept", given, true},
		{"missing generated", "", false},
		{"invalid replaced", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.header != "" {
				req.Header.Set(headerRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			got := rec.Header().Get(headerRequestID)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("X-Request-ID %q is not a UUID", got)
			}
			if tt.keep && got != tt.header {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.header)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("X-Request-ID %q was not replaced", got)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	post(t, s.Handler(), "/v1/layout", testChart)
	post(t, s.Handler(), "/v1/layout", `{}`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []int{http.StatusOK, http.StatusBadRequest}
	if len(hooks.statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", hooks.statuses, want)
	}
	for i := range want {
		if hooks.statuses[i] != want[i] {
			t.Errorf("statuses[%d] = %d, want %d", i, hooks.statuses[i], want[i])
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("ListenAndServe() error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("ListenAndServe() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
