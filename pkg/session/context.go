package session

import "context"

type contextKey struct{}

var sessionKey = contextKey{}

// NewContext returns a context carrying the session id. An empty id selects
// the default session.
func NewContext(ctx context.Context, id string) context.Context {
	if id == "" {
		id = DefaultID
	}
	return context.WithValue(ctx, sessionKey, id)
}

// IDFromContext extracts the session id from ctx.
func IDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok
}

// MustIDFromContext returns the session id in ctx, or DefaultID.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok || id == "" {
		return DefaultID
	}
	return id
}
