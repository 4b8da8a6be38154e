package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Compendium/internal/render"
)

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http")+"/ws", header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, req WSRequest) WSMessage {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func TestWebSocketRender(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts.URL, nil)

	msg := exchange(t, conn, WSRequest{ID: "1", Type: "markup", Format: "text", Text: "{@damage 2d6} fire"})
	if msg.Type != "result" || msg.ID != "1" || msg.Result == nil || msg.Result.Output != "7 (2d6) fire" {
		t.Errorf("markup reply = %+v", msg)
	}

	msg = exchange(t, conn, WSRequest{ID: "2", Type: "entry", Format: "markdown", Entry: []byte(`{"type":"hr"}`)})
	if msg.Type != "result" || msg.Result == nil || msg.Result.Output != "---" {
		t.Errorf("entry reply = %+v", msg)
	}

	msg = exchange(t, conn, WSRequest{ID: "3", Type: "markup", Format: "text", Text: "{@yeet}"})
	if msg.Type != "error" || msg.ID != "3" || msg.Error == nil || msg.Error.Code != "UNKNOWN_TAG" {
		t.Errorf("error reply = %+v", msg)
	}

	msg = exchange(t, conn, WSRequest{ID: "4", Type: "audio"})
	if msg.Type != "error" || msg.Error.Code != "INVALID_REQUEST" {
		t.Errorf("bad type reply = %+v", msg)
	}
}

func TestWebSocketNotices(t *testing.T) {
	s, ts := newTestServer(t, DefaultConfig())
	conn := dial(t, ts.URL, nil)

	deadline := time.Now().Add(5 * time.Second)
	for s.hub.Count() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.hub.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.hub.Count())
	}

	resp, _ := post(t, ts.URL+"/api/render/markup", `{"format":"html","text":"{@i notice}"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	msg := read(t, conn)
	if msg.Type != "rendered" || msg.Result == nil || msg.Result.Output != "<i>notice</i>" {
		t.Errorf("notice = %+v", msg)
	}
}

func TestWebSocketRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WebSocket.MaxMessageRate = 1
	_, ts := newTestServer(t, cfg)
	conn := dial(t, ts.URL, nil)

	var codes []string
	for i := 0; i < 3; i++ {
		msg := exchange(t, conn, WSRequest{Type: "markup", Format: "text", Text: "x"})
		if msg.Error != nil {
			codes = append(codes, msg.Error.Code)
		}
	}
	if len(codes) != 1 || codes[0] != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("error codes = %v, want one RATE_LIMIT_EXCEEDED", codes)
	}
}

func TestWebSocketOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"https://allowed.example"}
	_, ts := newTestServer(t, cfg)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatal("Dial() from a foreign origin succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("handshake response = %v, want 403", resp)
	}

	conn := dial(t, ts.URL, http.Header{"Origin": {"https://allowed.example"}})
	msg := exchange(t, conn, WSRequest{Type: "markup", Format: "text", Text: "ok"})
	if msg.Result == nil || msg.Result.Output != "ok" {
		t.Errorf("reply = %+v", msg)
	}
}

func TestWebSocketHubNotRunning(t *testing.T) {
	s, err := New(DefaultConfig(), render.New(render.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ws", nil)
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestNotifySkipsCached(t *testing.T) {
	h := NewHub()
	h.Notify(render.Result{Source: render.SourceMemory})
	if len(h.broadcast) != 0 {
		t.Error("cached result was broadcast")
	}
	h.Notify(render.Result{Source: render.SourceRender})
	if len(h.broadcast) != 1 {
		t.Error("fresh result was not broadcast")
	}
}
