package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bowerassets/pkg/buildinfo"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
	"github.com/matzehuels/bowerassets/pkg/observability"
)

type fakeSource struct {
	formulae formula.Formulae
	err      error
	calls    atomic.Int32
}

func (f *fakeSource) Content(ctx context.Context) (formula.Formulae, error) {
	f.calls.Add(1)
	return f.formulae, f.err
}

func demoFormulae() formula.Formulae {
	return formula.Formulae{
		"jquery_js":  {Files: []string{"/c/jquery/jquery.js"}, Filters: []string{"uglify"}, Options: map[string]any{}},
		"jquery_css": {Files: []string{}, Filters: []string{}, Options: map[string]any{}},
	}
}

func newTestServer(src ContentSource) *httptest.Server {
	return httptest.NewServer(New(src, log.New(io.Discard)).Handler())
}

func TestServer_Routes(t *testing.T) {
	tests := []struct {
		name       string
		src        *fakeSource
		path       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"Health", &fakeSource{}, "/healthz", http.StatusOK, ""},
		{"AllFormulae", &fakeSource{formulae: demoFormulae()}, "/formulae", http.StatusOK, ""},
		{"OneFormula", &fakeSource{formulae: demoFormulae()}, "/formulae/jquery_js", http.StatusOK, ""},
		{"UnknownFormula", &fakeSource{formulae: demoFormulae()}, "/formulae/nope_js", http.StatusNotFound, errors.ErrCodeFormulaNotFound},
		{"ManifestMissing", &fakeSource{err: errors.New(errors.ErrCodeManifestNotFound, "gone")}, "/formulae", http.StatusNotFound, errors.ErrCodeManifestNotFound},
		{"NotReady", &fakeSource{err: errors.Wrap(errors.ErrCodeResolutionNotReady, io.EOF, "run install")}, "/formulae", http.StatusServiceUnavailable, errors.ErrCodeResolutionNotReady},
		{"Internal", &fakeSource{err: io.ErrUnexpectedEOF}, "/formulae/jquery_js", http.StatusInternalServerError, errors.ErrCodeInternal},
		{"NoRoute", &fakeSource{}, "/nope", http.StatusNotFound, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(tt.src)
			defer ts.Close()

			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if tt.wantCode == "" {
				return
			}

			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
			if body.Error.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestServer_FormulaBody(t *testing.T) {
	ts := newTestServer(&fakeSource{formulae: demoFormulae()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/formulae/jquery_js")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got formulaResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "jquery_js" {
		t.Errorf("Name = %q, want jquery_js", got.Name)
	}
	if !slices.Equal(got.Inputs, []string{"/c/jquery/jquery.js"}) || !slices.Equal(got.Filters, []string{"uglify"}) {
		t.Errorf("formula = %+v", got)
	}
}

func TestServer_AllFormulaeBody(t *testing.T) {
	ts := newTestServer(&fakeSource{formulae: demoFormulae()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/formulae")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got map[string]struct {
		Inputs  []string `json:"inputs"`
		Filters []string `json:"filters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d formulae, want 2", len(got))
	}
	if len(got["jquery_css"].Inputs) != 0 {
		t.Errorf("jquery_css inputs = %v, want empty", got["jquery_css"].Inputs)
	}
}

func TestServer_RecomputesPerRequest(t *testing.T) {
	src := &fakeSource{formulae: demoFormulae()}
	ts := newTestServer(src)
	defer ts.Close()

	for range 3 {
		resp, err := http.Get(ts.URL + "/formulae")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	if n := src.calls.Load(); n != 3 {
		t.Errorf("Content calls = %d, want 3", n)
	}
}

func TestServer_RequestID(t *testing.T) {
	ts := newTestServer(&fakeSource{})
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("echoed request id = %q, want abc-123", got)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("generated request id = %q, want a UUID", got)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	paths    []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, method+" "+path)
	h.statuses = append(h.statuses, status)
}

func TestServer_Hooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(&fakeSource{formulae: demoFormulae()})
	defer ts.Close()

	for _, p := range []string{"/healthz", "/formulae/missing"} {
		resp, err := http.Get(ts.URL + p)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	wantPaths := []string{"GET /healthz", "GET /formulae/{name}"}
	if !slices.Equal(hooks.paths, wantPaths) {
		t.Errorf("paths = %v, want %v", hooks.paths, wantPaths)
	}
	wantStatuses := []int{http.StatusOK, http.StatusNotFound}
	if !slices.Equal(hooks.statuses, wantStatuses) {
		t.Errorf("statuses = %v, want %v", hooks.statuses, wantStatuses)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeFormulaNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeManifestNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeResolutionNotReady, "x"), http.StatusServiceUnavailable},
		{errors.Wrap(errors.ErrCodeResolutionNotReady, errors.New(errors.ErrCodeManifestNotFound, "inner"), "outer"), http.StatusServiceUnavailable},
		{errors.New(errors.ErrCodeInvalidManifest, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestServer_ListenAndServeShutdown(t *testing.T) {
	s := New(&fakeSource{}, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil && err != http.ErrServerClosed {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_HealthReportsVersion(t *testing.T) {
	ts := newTestServer(&fakeSource{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] != buildinfo.Version {
		t.Errorf("health body = %v", body)
	}
}
