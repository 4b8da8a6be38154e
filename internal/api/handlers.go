package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/FocuswithJustin/Compendium/core/cache"
	"github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/internal/render"
	"github.com/FocuswithJustin/Compendium/internal/server"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// RenderRequest is the body of the render endpoints. Text is used by
// markup renders and Entry by entry renders.
type RenderRequest struct {
	Format string          `json:"format"`
	Text   string          `json:"text,omitempty"`
	Entry  json.RawMessage `json:"entry,omitempty"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status  string      `json:"status"`
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	Formats int         `json:"formats"`
	Clients int         `json:"clients"`
	Cache   cache.Stats `json:"cache"`
}

const defaultFormat = "html"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"name":    "Compendium render API",
		"version": s.cfg.Version,
		"endpoints": []string{
			"GET /health",
			"GET /api/formats",
			"GET /api/stats",
			"POST /api/render/markup",
			"POST /api/render/entry",
			"POST /api/preview",
			"WS /ws",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: s.cfg.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Formats: len(s.svc.Formats()),
		Clients: s.hub.Count(),
		Cache:   s.svc.Stats(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	list := s.svc.Formats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Data:    list,
		Meta: &APIMeta{
			Total:     len(list),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleRenderMarkup(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRender(w, r)
	if !ok {
		return
	}
	res, err := s.svc.Markup(r.Context(), req.Format, req.Text)
	s.finishRender(w, res, err)
}

func (s *Server) handleRenderEntry(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRender(w, r)
	if !ok {
		return
	}
	if len(req.Entry) == 0 {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "entry is required")
		return
	}
	res, err := s.svc.EntryJSON(r.Context(), req.Format, req.Entry)
	s.finishRender(w, res, err)
}

// handlePreview renders an entry as an HTML page body, served with the
// preview content policy.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRender(w, r)
	if !ok {
		return
	}
	req.Format = "html"
	var (
		res render.Result
		err error
	)
	if len(req.Entry) > 0 {
		res, err = s.svc.EntryJSON(r.Context(), req.Format, req.Entry)
	} else {
		res, err = s.svc.Markup(r.Context(), req.Format, req.Text)
	}
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}
	w.Header().Set("Content-Security-Policy", server.PreviewCSPConfig().Header())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, res.Output)
}

func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, bool) {
	var req RenderRequest
	if ct := r.Header.Get("Content-Type"); ct != "" && !server.ValidateContentType(ct, []string{"application/json"}) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return req, false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large")
			return req, false
		}
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body: "+err.Error())
		return req, false
	}
	if req.Format == "" {
		req.Format = defaultFormat
	}
	return req, true
}

func (s *Server) finishRender(w http.ResponseWriter, res render.Result, err error) {
	if err != nil {
		status, code := errorStatus(err)
		respondError(w, status, code, err.Error())
		return
	}
	s.hub.Notify(res)
	respond(w, http.StatusOK, res)
}

// errorStatus maps a render error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	var notFound *errors.NotFoundError
	switch {
	case errors.As(err, &notFound) && notFound.Resource == "format":
		return http.StatusNotFound, "FORMAT_NOT_FOUND"
	case errors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusUnprocessableEntity, "UNKNOWN_TAG"
	case errors.Is(err, errors.ErrLimitExceeded):
		return http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"
	case errors.Is(err, errors.ErrNotImplemented):
		return http.StatusNotImplemented, "NOT_IMPLEMENTED"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "CANCELED"
	}
	return http.StatusInternalServerError, "RENDER_FAILED"
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}
