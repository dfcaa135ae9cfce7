package services

import (
	"context"
	"log/slog"

	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Capabilities portssvc.CapabilityChecker
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireCapability checks the named capability for a user via the injected
// checker. A nil checker denies, so a wiring mistake cannot widen access.
func (s *BaseService) RequireCapability(ctx context.Context, userID, capability string) (bool, error) {
	if s.Capabilities == nil {
		return false, nil
	}
	return s.Capabilities.HasPermission(ctx, userID, capability)
}
