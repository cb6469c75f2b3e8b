// Package contextkeys holds every context key ordcheck stores values under.
//
// Keep new keys here rather than declaring private key types in each package, so a
// value set by one layer (HTTP middleware) can be read by another (logging):
//
//	ctx = contextkeys.WithRequestID(ctx, id)
//	id := contextkeys.RequestID(ctx)
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// RequestIDKey holds the request id string.
	// Set by httputil.RequestIDMiddleware, read by the logging helpers.
	RequestIDKey Key = "request_id"

	// LoggerKey holds a *logrus.Logger.
	// Set by observability.WithLogger.
	LoggerKey Key = "logger"

	// ClientKey holds the rate-limit key of the caller, e.g. "ip:10.0.0.1".
	// Set by the rate limit middleware.
	ClientKey Key = "client"
)

// WithRequestID adds request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestID retrieves the request ID from context, or ""
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithClient adds the caller's rate-limit key to the context
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ClientKey, client)
}

// Client retrieves the caller's rate-limit key from context, or ""
func Client(ctx context.Context) string {
	if client, ok := ctx.Value(ClientKey).(string); ok {
		return client
	}
	return ""
}
