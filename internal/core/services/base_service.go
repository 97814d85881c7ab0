package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_tracker/internal/middleware"
)

// BaseService tags every log line of a service with its component name and
// the request-scoped attributes the logging middleware put in ctx.
type BaseService struct {
	component string
}

func newBaseService(component string) BaseService {
	return BaseService{component: component}
}

// GetLogger returns the request logger, or the default one outside a request.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	if s.component == "" {
		return logger
	}
	return logger.With(slog.String("component", s.component))
}

func (s *BaseService) LogError(ctx context.Context, err error, msg string, attrs ...any) {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	s.GetLogger(ctx).Error(msg, args...)
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).Warn(msg, attrs...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).Info(msg, attrs...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).Debug(msg, attrs...)
}
