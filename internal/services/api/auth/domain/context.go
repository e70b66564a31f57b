package domain

import "context"

type ctxKey uint8

const authKey ctxKey = iota

// authCtx is immutable once attached to a request context
type authCtx struct {
	identity Identity
	session  Session
}

// WithAuth attaches the resolved identity and session to ctx
func WithAuth(ctx context.Context, id Identity, s Session) context.Context {
	return context.WithValue(ctx, authKey, authCtx{identity: id, session: s})
}

// IdentityFrom returns the authenticated identity if present
func IdentityFrom(ctx context.Context) (Identity, bool) {
	a, ok := ctx.Value(authKey).(authCtx)
	return a.identity, ok
}

// SessionFrom returns the resolved session if present
func SessionFrom(ctx context.Context) (Session, bool) {
	a, ok := ctx.Value(authKey).(authCtx)
	return a.session, ok
}
