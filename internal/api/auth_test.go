package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	const key = "test-api-key-12345678"
	tests := []struct {
		name    string
		enabled bool
		path    string
		header  string
		want    int
	}{
		{"disabled", false, "/api/stats", "", http.StatusOK},
		{"valid key", true, "/api/stats", key, http.StatusOK},
		{"missing key", true, "/api/stats", "", http.StatusUnauthorized},
		{"wrong key", true, "/api/stats", "nope", http.StatusUnauthorized},
		{"public root", true, "/", "", http.StatusOK},
		{"public health", true, "/health", "", http.StatusOK},
		{"websocket query key", true, "/ws?api_key=" + key, "", http.StatusOK},
		{"query key elsewhere", true, "/api/stats?api_key=" + key, "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(AuthConfig{Enabled: tt.enabled, APIKey: key}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestValidateAuthConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
	}{
		{"disabled", AuthConfig{}, false},
		{"valid", AuthConfig{Enabled: true, APIKey: "0123456789abcdef"}, false},
		{"empty key", AuthConfig{Enabled: true}, true},
		{"short key", AuthConfig{Enabled: true, APIKey: "short"}, true},
	}
	for _, tt := range tests {
		if err := ValidateAuthConfig(tt.cfg); (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateAuthConfig() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
