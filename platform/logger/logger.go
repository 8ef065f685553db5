// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// SessionIDKey is the context key for the quotation form session ID
	SessionIDKey contextKey = "session_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with request and session IDs extracted from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("request_id", requestID))}
	}

	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok && sessionID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("session_id", sessionID))}
	}

	return newLogger
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent logs admin authentication events
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	if success {
		l.Info("auth_event",
			slog.String("event", event),
			slog.String("email", email),
			slog.Bool("success", success),
		)
	} else {
		l.Warn("auth_event",
			slog.String("event", event),
			slog.String("email", email),
			slog.Bool("success", success),
			slog.String("reason", reason),
		)
	}
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// SubmissionWarning logs a degradable submission step failure (proposal
// generation, email dispatch) that did not block the confirmation flow.
func (l *Logger) SubmissionWarning(step string, inquiryID string, err error) {
	l.Warn("submission_warning",
		slog.String("step", step),
		slog.String("inquiry_id", inquiryID),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
