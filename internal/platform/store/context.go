package store

import "context"

type (
	actorKey struct{}
	reqIDKey struct{}
)

// WithActor attaches the acting identity id to the context so transaction
// hooks can surface it to the database (set_config) for audit triggers
func WithActor(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorID retrieves the acting identity id from context if present
func ActorID(ctx context.Context) (int64, bool) {
	v := ctx.Value(actorKey{})
	if v == nil {
		return 0, false
	}
	id, _ := v.(int64)
	return id, id != 0
}

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID retrieves a request id from context if present
func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(reqIDKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
