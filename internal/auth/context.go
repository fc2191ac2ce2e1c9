package auth

import "context"

// ContextUser is the per-request identity derived from a verified token. It
// is created by the auth middleware and dies with the request.
type ContextUser struct {
	ID       int64
	Username string
}

type contextKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user ContextUser) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext extracts the identity injected by the auth middleware.
func UserFromContext(ctx context.Context) (ContextUser, bool) {
	user, ok := ctx.Value(contextKey{}).(ContextUser)
	return user, ok
}
