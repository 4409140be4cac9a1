package correlationid

import (
	"context"
)

type contextKey struct{}

// Header is the HTTP header carrying the correlation ID.
const Header = "X-Correlation-ID"

// WithContext returns a copy of ctx carrying the given correlation ID.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the correlation ID from ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}
