package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the per-request identity derived from a verified token.
// It is never persisted; the full claim set rides along for future
// authorization extensions.
type Principal struct {
	ID     uuid.UUID
	Claims Claims
}

// contextKey is unexported so no other package can collide with our keys.
type contextKey int

const principalKey contextKey = iota

// ContextWithPrincipal returns a new context carrying the principal.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal set by the middleware.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
