// Package ctxutil stores per-request identifiers in a context.
package ctxutil

import "context"

type key int

const (
	requestIDKey key = iota
	clientIDKey
)

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// WithClientID returns a copy of ctx carrying the client id. The client id
// keys the per-client request quota.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey, id)
}

// ClientID returns the client id stored in ctx, or "".
func ClientID(ctx context.Context) string {
	return stringValue(ctx, clientIDKey)
}

func stringValue(ctx context.Context, k key) string {
	if s, ok := ctx.Value(k).(string); ok {
		return s
	}
	return ""
}
