package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogUnexpected logs err unless it is an expected client-side failure.
func (s *BaseService) LogUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrInvalidPeriod) || errors.Is(err, apperrors.ErrDuplicate) {
		s.LogDebug(ctx, msg, append([]any{slog.String("error", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func normalizeListLimit(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, fmt.Errorf("%w: limit and offset must not be negative", apperrors.ErrValidation)
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, offset, nil
}

func requireName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	return trimmed, nil
}

// nowUTC truncates to milliseconds, the precision the store keeps.
func nowUTC() time.Time {
	return toStoredPrecision(time.Now())
}

// toStoredPrecision drops what the store cannot keep: timestamps persist as
// Unix milliseconds.
func toStoredPrecision(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
