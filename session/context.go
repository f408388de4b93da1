package session

import "context"

type contextKey int

const claimsContextKey contextKey = iota

// WithClaims returns a context carrying the validated session claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFrom extracts the session claims from a request context. Returns
// nil for unauthenticated requests.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}
