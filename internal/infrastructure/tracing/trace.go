// Package tracing tags every request with a ULID and logs a span for
// it, so a client-reported failure can be matched to server logs.
package tracing

import (
	"context"

	"go.uber.org/zap"

	"github.com/carlhannes/hannes-os/internal/shared/id"
)

type contextKey struct{}

// Header carries the request id to and from clients
const Header = "X-Request-ID"

// Tracer stamps requests with ids and logs their spans
type Tracer struct {
	log *zap.Logger
}

// New creates a tracer logging through the given zap logger
func New(log *zap.Logger) *Tracer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracer{log: log}
}

// RequestID returns the id stored in ctx, or "" when the request was
// not traced.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return ""
}

// ensure returns the caller-propagated id or mints a fresh one
func ensure(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return id.NewRequestID().String()
}
