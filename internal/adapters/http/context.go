package http

import "context"

// Version is the application version reported by /info.
// Overridden at build time via -ldflags.
var Version = "0.1.0"

// APIVersion identifies the wire contract served by this handler.
const APIVersion = "1.0"

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id assigned by the middleware,
// or an empty string outside a request scope.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
