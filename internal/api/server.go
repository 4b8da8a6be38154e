// Package api serves the render service over HTTP and WebSocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/FocuswithJustin/Compendium/internal/logging"
	"github.com/FocuswithJustin/Compendium/internal/render"
	"github.com/FocuswithJustin/Compendium/internal/server"
)

// Server is the render API.
type Server struct {
	cfg     Config
	svc     *render.Service
	hub     *Hub
	running atomic.Bool
	started time.Time
}

// New validates cfg and creates a server for svc.
func New(cfg Config, svc *render.Service) (*Server, error) {
	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	def := DefaultConfig()
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.WebSocket.MaxMessageRate <= 0 {
		cfg.WebSocket.MaxMessageRate = def.WebSocket.MaxMessageRate
	}
	if cfg.WebSocket.MaxMessageSize <= 0 {
		cfg.WebSocket.MaxMessageSize = def.WebSocket.MaxMessageSize
	}
	return &Server{cfg: cfg, svc: svc, hub: NewHub(), started: time.Now()}, nil
}

// Start runs the WebSocket hub until ctx is done. It must be called before
// WebSocket clients connect.
func (s *Server) Start(ctx context.Context) {
	if s.running.CompareAndSwap(false, true) {
		go s.hub.Run(ctx)
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/formats", s.handleFormats)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/render/markup", s.handleRenderMarkup)
	mux.HandleFunc("POST /api/render/entry", s.handleRenderEntry)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		if !s.running.Load() {
			respondError(w, http.StatusServiceUnavailable, "HUB_NOT_RUNNING", "WebSocket hub not running")
			return
		}
		s.handleWebSocket(w, r)
	})
	return mux
}

// Handler returns the routes wrapped in the middleware chain: logging,
// CORS, rate limiting, authentication and security headers, outermost first.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = server.SecurityHeaders(server.APICSPConfig(), s.routes())

	if s.cfg.Auth.Enabled {
		handler = AuthMiddleware(s.cfg.Auth, handler)
		logging.SecurityEvent("authentication_configured", "api", "enabled", true)
	}

	if s.cfg.RateLimitRequests > 0 {
		limiter := NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         s.cfg.RateLimitBurst,
		})
		handler = limiter.Middleware(handler)
	}

	handler = server.CORSMiddleware(server.CORSConfig{AllowedOrigins: s.cfg.AllowedOrigins}, handler)
	if len(s.cfg.AllowedOrigins) == 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins")
	}

	return logging.CombinedMiddleware(handler)
}

// ListenAndServe serves on the configured port until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.Start(ctx)
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	logging.ServerStartup("render_api", "http", port, "websocket", "/ws")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
