package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// unexported key types so no other package can overwrite these values
type identityKey struct{}

// Identity is the authenticated caller, derived from a verified bearer token
type Identity struct {
	Subject  string
	Email    string
	Username string
}

// WithIdentity attaches the caller identity to the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller identity, or nil when the request
// did not pass through RequireAuth
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey{}).(*Identity)
	return identity
}

// SubjectFromContext returns the caller subject, or "" when unauthenticated
func SubjectFromContext(ctx context.Context) string {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.Subject
	}
	return ""
}

// GetRequestIDFromContext returns the request ID set by chi's RequestID
// middleware, or "" outside of it
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}
