package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Compendium/core/cache"
	_ "github.com/FocuswithJustin/Compendium/internal/formats/all"
	"github.com/FocuswithJustin/Compendium/internal/render"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	svc := render.New(render.Options{Cache: cache.DefaultConfig()})
	t.Cleanup(svc.Close)
	s, err := New(cfg, svc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s.Start(ctx)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

type renderResponse struct {
	Success bool          `json:"success"`
	Data    render.Result `json:"data"`
	Error   *APIError     `json:"error"`
}

func post(t *testing.T, url string, body string) (*http.Response, renderResponse) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error = %v", url, err)
	}
	defer resp.Body.Close()
	var out renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestRenderMarkupEndpoint(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	resp, out := post(t, ts.URL+"/api/render/markup", `{"format":"markdown","text":"{@b bold} and {@i it}"}`)
	if resp.StatusCode != http.StatusOK || !out.Success {
		t.Fatalf("status = %d, response = %+v", resp.StatusCode, out)
	}
	if out.Data.Output != "**bold** and _it_" {
		t.Errorf("Output = %q", out.Data.Output)
	}
	if out.Data.Source != render.SourceRender {
		t.Errorf("Source = %q, want %q", out.Data.Source, render.SourceRender)
	}

	_, again := post(t, ts.URL+"/api/render/markup", `{"format":"markdown","text":"{@b bold} and {@i it}"}`)
	if again.Data.Source != render.SourceMemory {
		t.Errorf("second Source = %q, want %q", again.Data.Source, render.SourceMemory)
	}

	_, def := post(t, ts.URL+"/api/render/markup", `{"text":"{@b x}"}`)
	if def.Data.Format != "html" || def.Data.Output != "<b>x</b>" {
		t.Errorf("default format result = %+v", def.Data)
	}
}

func TestRenderEntryEndpoint(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	resp, out := post(t, ts.URL+"/api/render/entry", `{"format":"text","entry":{"type":"list","items":["One","Two"]}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, response = %+v", resp.StatusCode, out)
	}
	if out.Data.Output != "- One\n- Two" || out.Data.Kind != render.KindEntry {
		t.Errorf("result = %+v", out.Data)
	}
}

func TestRenderErrors(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown format", "/api/render/markup", `{"format":"pdf","text":"x"}`, http.StatusNotFound, "FORMAT_NOT_FOUND"},
		{"unknown tag", "/api/render/markup", `{"format":"text","text":"{@yeet x}"}`, http.StatusUnprocessableEntity, "UNKNOWN_TAG"},
		{"unclosed tag", "/api/render/markup", `{"format":"text","text":"{@b x"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", "/api/render/markup", `{"format":`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown field", "/api/render/markup", `{"format":"text","txt":"x"}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing entry", "/api/render/entry", `{"format":"text"}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown kind", "/api/render/entry", `{"format":"text","entry":{"type":"nope"}}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if out.Success || out.Error == nil || out.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", out.Error, tt.wantCode)
			}
		})
	}
}

func TestBodyLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 32
	_, ts := newTestServer(t, cfg)

	resp, out := post(t, ts.URL+"/api/render/markup", `{"format":"text","text":"`+strings.Repeat("x", 64)+`"}`)
	if resp.StatusCode != http.StatusRequestEntityTooLarge || out.Error.Code != "BODY_TOO_LARGE" {
		t.Errorf("status = %d, error = %+v", resp.StatusCode, out.Error)
	}

	resp, err := http.Post(ts.URL+"/api/render/markup", "text/plain", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("text/plain status = %d, want 415", resp.StatusCode)
	}
}

func TestInfoEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var health struct {
		Data HealthInfo `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health.Data.Status != "healthy" || health.Data.Version != "1.2.3" || health.Data.Formats < 5 {
		t.Errorf("health = %+v", health.Data)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
	if resp.Header.Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy header")
	}

	resp, err = http.Get(ts.URL + "/api/formats")
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Meta APIMeta `json:"meta"`
	}
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if list.Meta.Total != len(list.Data) || list.Meta.Total < 5 {
		t.Errorf("formats = %+v", list)
	}

	resp, err = http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/render/markup")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET render status = %d, want 405", resp.StatusCode)
	}
}

func TestPreview(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	resp, err := http.Post(ts.URL+"/api/preview", "application/json",
		bytes.NewBufferString(`{"entry":{"type":"entries","name":"Pits","entries":["Deep."]}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(buf.String(), "<p>Deep.</p>") {
		t.Errorf("body = %q", buf.String())
	}
	if csp := resp.Header.Get("Content-Security-Policy"); !strings.Contains(csp, "img-src") {
		t.Errorf("CSP = %q, want preview policy", csp)
	}
}

func TestAuthAndRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth = AuthConfig{Enabled: true, APIKey: "0123456789abcdef"}
	cfg.RateLimitRequests = 60
	cfg.RateLimitBurst = 2
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", resp.StatusCode)
	}

	wantStatus := []int{http.StatusOK, http.StatusTooManyRequests}
	for i, want := range wantStatus {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/stats", nil)
		req.Header.Set("X-API-Key", "0123456789abcdef")
		resp, err = http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("keyed request %d status = %d, want %d", i+1, resp.StatusCode, want)
		}
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth = AuthConfig{Enabled: true, APIKey: "short"}
	if _, err := New(cfg, render.New(render.Options{})); err == nil {
		t.Error("New() expected error for a short API key")
	}
}

func TestServeShutsDown(t *testing.T) {
	s, err := New(DefaultConfig(), render.New(render.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewUnstartedServer(nil)
	ln := ts.Listener
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	resp.Body.Close()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve() error = %v", err)
	}
}
