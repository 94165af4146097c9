// Package requestctx carries per-request values shared by the HTTP
// middleware and the handlers.
package requestctx

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey{}).(string); ok {
		return value
	}
	return ""
}

// Logger returns the logger installed by the access log middleware. Outside
// of it, the global logger tagged with the request id is used instead.
func Logger(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	logger := log.With().Str("request_id", GetRequestID(ctx)).Logger()
	return &logger
}
