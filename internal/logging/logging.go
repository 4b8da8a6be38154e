// Package logging provides structured logging using Go's slog package.
//
// Logs go to stderr so that rendered output on stdout stays clean.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// RequestIDKey is the context key for request IDs.
const RequestIDKey ContextKey = "request_id"

var defaultLogger *slog.Logger

func init() {
	InitLogger(slog.LevelInfo, FormatJSON)
}

// Format is a log output format.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// ParseLevel parses "debug", "info", "warn" or "error". An empty string is
// info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat parses "json" or "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	}
	return FormatJSON, fmt.Errorf("unknown log format %q", s)
}

// InitLogger sets the global logger, writing to stderr.
func InitLogger(level slog.Level, format Format) {
	InitLoggerTo(os.Stderr, level, format)
}

// InitLoggerTo sets the global logger, writing to w.
func InitLoggerTo(w io.Writer, level slog.Level, format Format) {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if format == FormatText {
		handler = slog.NewTextHandler(w, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// replaceAttr formats timestamps as RFC 3339 seconds.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
	}
	return a
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// fromContext returns the global logger with the request ID of ctx attached.
func fromContext(ctx context.Context) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		return defaultLogger.With("request_id", id)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// event logs msg with the fixed fields followed by the caller's args.
func event(ctx context.Context, l *slog.Logger, level slog.Level, msg string, fields []any, args []any) {
	l.Log(ctx, level, msg, append(fields, args...)...)
}

// HTTPRequest logs a served request.
func HTTPRequest(ctx context.Context, method, path, remoteAddr string, statusCode int, duration time.Duration, args ...any) {
	event(ctx, fromContext(ctx), slog.LevelInfo, "http_request", []any{
		"method", method,
		"path", path,
		"remote_addr", remoteAddr,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	}, args)
}

// RenderEvent logs a completed render.
func RenderEvent(ctx context.Context, format, kind string, bytes int, duration time.Duration, args ...any) {
	event(ctx, fromContext(ctx), slog.LevelDebug, "render", []any{
		"format", format,
		"kind", kind,
		"bytes", bytes,
		"duration_ms", duration.Milliseconds(),
	}, args)
}

// RenderError logs a failed render.
func RenderError(ctx context.Context, format, kind string, err error, args ...any) {
	event(ctx, fromContext(ctx), slog.LevelWarn, "render_error", []any{
		"format", format,
		"kind", kind,
		"error", err.Error(),
	}, args)
}

// CacheEvent logs cache activity such as a store hit or a prune.
func CacheEvent(name string, args ...any) {
	event(context.Background(), defaultLogger, slog.LevelDebug, "cache_event", []any{"event", name}, args)
}

// WebSocketEvent logs a client joining or leaving the hub.
func WebSocketEvent(name string, clientCount int, args ...any) {
	event(context.Background(), defaultLogger, slog.LevelInfo, "websocket_event", []any{
		"event", name,
		"client_count", clientCount,
	}, args)
}

// ServerStartup logs a listener coming up.
func ServerStartup(serverType, protocol string, port int, args ...any) {
	event(context.Background(), defaultLogger, slog.LevelInfo, "server_startup", []any{
		"server_type", serverType,
		"protocol", protocol,
		"port", port,
	}, args)
}

// SecurityEvent logs rejected requests and security configuration.
func SecurityEvent(name, component string, args ...any) {
	event(context.Background(), defaultLogger, slog.LevelWarn, "security_event", []any{
		"event", name,
		"component", component,
	}, args)
}
