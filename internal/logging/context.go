package logging

import (
	"context"
	"log/slog"

	"mediadesk/internal/services"
)

// Standard structured logging keys.
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldCorrelationID = "correlation_id"
)

// WithContext returns logger extended with the operation and request ID
// carried by ctx, if any.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if op, ok := services.OperationFromContext(ctx); ok {
		args = append(args, String(FieldOperation, op))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		args = append(args, String(FieldCorrelationID, rid))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
