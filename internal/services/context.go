package services

import "context"

// ctxKey keeps the request-scoped values private to this package.
type ctxKey int

const (
	operationKey ctxKey = iota
	requestIDKey
)

// WithOperation tags ctx with the media or file operation being served.
// A blank name leaves ctx unchanged.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withString(ctx, operationKey, operation)
}

// OperationFromContext returns the operation tag, if any.
func OperationFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, operationKey)
}

// WithRequestID tags ctx with the HTTP correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

func withString(ctx context.Context, key ctxKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringValue(ctx context.Context, key ctxKey) (string, bool) {
	value, ok := ctx.Value(key).(string)
	return value, ok && value != ""
}
