package auth

import "context"

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying the verified identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFrom retrieves the verified identity from ctx, or nil when the
// request is anonymous.
func IdentityFrom(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(contextKey{}).(*Identity); ok {
		return identity
	}
	return nil
}
