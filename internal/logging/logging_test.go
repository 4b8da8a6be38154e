package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// capture points the global logger at a buffer for the rest of the test.
func capture(t *testing.T, level slog.Level, format Format) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	t.Cleanup(func() { InitLogger(slog.LevelInfo, FormatJSON) })
	return &buf
}

// lastRecord decodes the last JSON line in buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &rec); err != nil {
		t.Fatalf("log line %q is not JSON: %v", lines[len(lines)-1], err)
	}
	return rec
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{" INFO ", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) error = nil, want error")
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, slog.LevelWarn, FormatJSON)
	Debug("hidden")
	Info("hidden")
	Warn("shown", "key", "value")
	Error("also shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output = %q, want debug and info filtered", out)
	}
	if !strings.Contains(out, `"key":"value"`) || !strings.Contains(out, "also shown") {
		t.Errorf("output = %q, want warn and error records", out)
	}
}

func TestTextFormat(t *testing.T) {
	buf := capture(t, slog.LevelInfo, FormatText)
	Info("hello", "n", 1)
	if out := buf.String(); !strings.Contains(out, "msg=hello") || !strings.Contains(out, "n=1") {
		t.Errorf("output = %q, want text handler output", out)
	}
}

func TestTimestampFormat(t *testing.T) {
	buf := capture(t, slog.LevelInfo, FormatJSON)
	Info("tick")
	ts, _ := lastRecord(t, buf)["time"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time = %q, want RFC 3339: %v", ts, err)
	}
}

func TestRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty) = %q, want empty", got)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID() = %q, want %q", got, "abc")
	}
}

func TestRenderEvents(t *testing.T) {
	buf := capture(t, slog.LevelDebug, FormatJSON)
	ctx := WithRequestID(context.Background(), "req-1")

	RenderEvent(ctx, "html", "markup", 42, 3*time.Millisecond, "cached", true)
	rec := lastRecord(t, buf)
	if rec["msg"] != "render" || rec["format"] != "html" || rec["bytes"] != float64(42) ||
		rec["duration_ms"] != float64(3) || rec["cached"] != true || rec["request_id"] != "req-1" {
		t.Errorf("RenderEvent record = %v", rec)
	}

	RenderError(ctx, "text", "entry", errors.New("unclosed tag"))
	rec = lastRecord(t, buf)
	if rec["msg"] != "render_error" || rec["level"] != "WARN" || rec["error"] != "unclosed tag" {
		t.Errorf("RenderError record = %v", rec)
	}
}

func TestServiceEvents(t *testing.T) {
	buf := capture(t, slog.LevelDebug, FormatJSON)
	tests := []struct {
		name string
		log  func()
		want map[string]any
	}{
		{
			name: "cache",
			log:  func() { CacheEvent("prune", "removed", 3) },
			want: map[string]any{"msg": "cache_event", "event": "prune", "removed": float64(3)},
		},
		{
			name: "websocket",
			log:  func() { WebSocketEvent("client_connected", 2) },
			want: map[string]any{"msg": "websocket_event", "client_count": float64(2)},
		},
		{
			name: "startup",
			log:  func() { ServerStartup("render_api", "http", 8080, "websocket", "/ws") },
			want: map[string]any{"msg": "server_startup", "port": float64(8080), "websocket": "/ws"},
		},
		{
			name: "security",
			log:  func() { SecurityEvent("auth_failure", "api", "reason", "missing_key") },
			want: map[string]any{"msg": "security_event", "level": "WARN", "component": "api", "reason": "missing_key"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.log()
			rec := lastRecord(t, buf)
			for k, v := range tt.want {
				if rec[k] != v {
					t.Errorf("record[%q] = %v, want %v", k, rec[k], v)
				}
			}
		})
	}
}

func TestCombinedMiddleware(t *testing.T) {
	buf := capture(t, slog.LevelInfo, FormatJSON)
	var seen string
	h := CombinedMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	req.Header.Set("X-Request-ID", "given")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "given" || rec.Header().Get("X-Request-ID") != "given" {
		t.Errorf("request id = %q, header %q, want given", seen, rec.Header().Get("X-Request-ID"))
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	logged := lastRecord(t, buf)
	if logged["msg"] != "http_request" || logged["status_code"] != float64(http.StatusTeapot) ||
		logged["path"] != "/api/formats" || logged["request_id"] != "given" {
		t.Errorf("http_request record = %v", logged)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	a, b := httptest.NewRecorder(), httptest.NewRecorder()
	h.ServeHTTP(a, httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(b, httptest.NewRequest(http.MethodGet, "/", nil))
	idA, idB := a.Header().Get("X-Request-ID"), b.Header().Get("X-Request-ID")
	if len(idA) != 36 || idA == idB {
		t.Errorf("generated ids = %q, %q, want distinct UUIDs", idA, idB)
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	rw.Write([]byte("x"))
	if rw.status != http.StatusOK || !rw.written {
		t.Errorf("status = %d, written = %v", rw.status, rw.written)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the wrapped writer")
	}
}
