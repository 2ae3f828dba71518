package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none is stored, so background work and
// tests can call it freely.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// GetSubjectFromContext retrieves the authenticated token subject.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, ok := c.Request.Context().Value(subjectKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
