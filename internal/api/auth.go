package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/FocuswithJustin/Compendium/internal/logging"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKey  string
}

// AuthMiddleware requires the X-API-Key header when auth is enabled. The
// root and health endpoints stay public.
func AuthMiddleware(authCfg AuthConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authCfg.Enabled || isPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if reason := checkAPIKey(r, authCfg); reason != "" {
			logging.SecurityEvent("unauthorized_request", "auth",
				"path", r.URL.Path,
				"reason", reason)
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", reason)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkAPIKey returns why r is not authorized, or "" when it is. WebSocket
// clients that cannot set headers may pass api_key in the query.
func checkAPIKey(r *http.Request, authCfg AuthConfig) string {
	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" && r.URL.Path == "/ws" {
		apiKey = r.URL.Query().Get("api_key")
	}
	if apiKey == "" {
		return "Missing X-API-Key header"
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(authCfg.APIKey)) != 1 {
		return "Invalid API key"
	}
	return ""
}

func isPublicEndpoint(path string) bool {
	return path == "/" || path == "/health"
}

// ValidateAuthConfig validates the authentication configuration.
func ValidateAuthConfig(cfg AuthConfig) error {
	if cfg.Enabled && cfg.APIKey == "" {
		return fmt.Errorf("API key is required when authentication is enabled")
	}
	if cfg.Enabled && len(cfg.APIKey) < 16 {
		return fmt.Errorf("API key must be at least 16 characters (got %d)", len(cfg.APIKey))
	}
	return nil
}
