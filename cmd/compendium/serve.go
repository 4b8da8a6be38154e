package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FocuswithJustin/Compendium/internal/api"
)

// ServeCmd starts the render API server.
type ServeCmd struct {
	Port      int      `help:"HTTP port" short:"p" default:"${port}"`
	CacheDB   string   `help:"SQLite render cache" default:"${cache_db}"`
	APIKey    string   `help:"Require this API key (env COMPENDIUM_API_KEY)" env:"COMPENDIUM_API_KEY"`
	RateLimit int      `help:"Requests per minute per client" default:"${rate_limit}"`
	Origins   []string `help:"Allowed CORS and WebSocket origins"`
}

func (c *ServeCmd) Run(g *Globals) error {
	svc, st, err := g.service(c.CacheDB)
	if err != nil {
		return err
	}
	defer svc.Close()
	if st != nil {
		defer st.Close()
	}

	cfg := api.ConfigFrom(g.Config)
	cfg.Port = c.Port
	cfg.Version = version
	cfg.RateLimitRequests = c.RateLimit
	if len(c.Origins) > 0 {
		cfg.AllowedOrigins = c.Origins
	}
	if c.APIKey != "" {
		cfg.Auth = api.AuthConfig{Enabled: true, APIKey: c.APIKey}
	}
	srv, err := api.New(cfg, svc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
