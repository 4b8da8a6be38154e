package api

import "github.com/FocuswithJustin/Compendium/internal/config"

// Config holds server configuration.
type Config struct {
	Port              int
	Version           string
	RateLimitRequests int   // Requests per minute (0 = disabled)
	RateLimitBurst    int   // Burst size
	MaxBodyBytes      int64 // Request body limit for render endpoints
	Auth              AuthConfig
	AllowedOrigins    []string // CORS and WebSocket origins (empty = allow all)
	WebSocket         WebSocketConfig
}

// WebSocketConfig limits render traffic on a single connection.
type WebSocketConfig struct {
	MaxMessageRate int   // Messages per second
	MaxMessageSize int64 // Bytes per message
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Port:              8080,
		Version:           "dev",
		RateLimitRequests: 120,
		RateLimitBurst:    20,
		MaxBodyBytes:      1 << 20,
		WebSocket: WebSocketConfig{
			MaxMessageRate: 10,
			MaxMessageSize: 64 << 10,
		},
	}
}

// ConfigFrom derives server settings from the process configuration.
func ConfigFrom(c config.Config) Config {
	cfg := DefaultConfig()
	cfg.Port = c.Port
	cfg.RateLimitRequests = c.RateLimit
	cfg.AllowedOrigins = c.AllowedOrigins
	return cfg
}
