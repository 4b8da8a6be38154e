package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Compendium/internal/logging"
	"github.com/FocuswithJustin/Compendium/internal/render"
	"github.com/FocuswithJustin/Compendium/internal/server"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// WSRequest is a render request sent by a WebSocket client. Type is
// "markup" or "entry".
type WSRequest struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Format string          `json:"format"`
	Text   string          `json:"text,omitempty"`
	Entry  json.RawMessage `json:"entry,omitempty"`
}

// WSMessage is sent to WebSocket clients. Type is "result", "error" or
// "rendered"; the last announces renders made by other clients.
type WSMessage struct {
	ID        string         `json:"id,omitempty"`
	Type      string         `json:"type"`
	Result    *render.Result `json:"result,omitempty"`
	Error     *APIError      `json:"error,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// Client is one WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	bucket *tokenBucket

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// queue hands data to the write pump. It reports false when the client is
// gone or too slow to keep up.
func (c *Client) queue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub tracks connected clients and fans out render notices.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Run handles registration and broadcasting until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				c.close()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				c.close()
			}
			n := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", n)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if !c.queue(msg) {
					c.close()
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify announces a fresh render to every client. Cached results are not
// announced.
func (h *Hub) Notify(res render.Result) {
	if res.Cached() {
		return
	}
	data, err := json.Marshal(WSMessage{Type: "rendered", Result: &res, Timestamp: now()})
	if err != nil {
		logging.Error("failed to marshal render notice", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping message")
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// handleWebSocket upgrades the connection after checking auth and origin,
// then serves render requests until the client leaves.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || server.OriginAllowed(origin, s.cfg.AllowedOrigins) {
				return true
			}
			logging.SecurityEvent("websocket_origin_rejected", "api", "origin", origin)
			return false
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)

	rate := float64(s.cfg.WebSocket.MaxMessageRate)
	c := &Client{
		hub:    s.hub,
		conn:   conn,
		bucket: newTokenBucket(rate*2, rate),
		send:   make(chan []byte, sendBuffer),
	}
	if !s.hub.join(c) {
		conn.Close()
		return
	}
	go c.writePump()
	go s.readPump(c, logging.GetRequestID(r.Context()))
}

func (s *Server) readPump(c *Client, requestID string) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := logging.WithRequestID(context.Background(), requestID)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("websocket unexpected close", "error", err)
			}
			return
		}
		reply := s.serveMessage(ctx, c, data)
		out, err := json.Marshal(reply)
		if err != nil {
			logging.Error("failed to marshal websocket reply", "error", err)
			continue
		}
		if !c.queue(out) {
			return
		}
	}
}

func (s *Server) serveMessage(ctx context.Context, c *Client, data []byte) WSMessage {
	var req WSRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wsError("", "INVALID_REQUEST", "Invalid JSON message: "+err.Error())
	}
	if ok, _, _ := c.bucket.take(); !ok {
		return wsError(req.ID, "RATE_LIMIT_EXCEEDED", "Too many messages")
	}
	if req.Format == "" {
		req.Format = defaultFormat
	}

	var (
		res render.Result
		err error
	)
	switch req.Type {
	case render.KindMarkup:
		res, err = s.svc.Markup(ctx, req.Format, req.Text)
	case render.KindEntry:
		res, err = s.svc.EntryJSON(ctx, req.Format, req.Entry)
	default:
		return wsError(req.ID, "INVALID_REQUEST", `type must be "markup" or "entry"`)
	}
	if err != nil {
		_, code := errorStatus(err)
		return wsError(req.ID, code, err.Error())
	}
	return WSMessage{ID: req.ID, Type: "result", Result: &res, Timestamp: now()}
}

func wsError(id, code, message string) WSMessage {
	return WSMessage{ID: id, Type: "error", Error: &APIError{Code: code, Message: message}, Timestamp: now()}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
