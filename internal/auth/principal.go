package auth

import (
	"context"
	"slices"
)

// Superuser grants every capability.
const Superuser = "*"

type Principal struct {
	Username     string
	Capabilities []string
	LocaleID     int64
}

func (p *Principal) Can(capability string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Capabilities, Superuser) || slices.Contains(p.Capabilities, capability)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Username returns the authenticated admin or "anonymous".
func Username(ctx context.Context) string {
	if p, ok := PrincipalFrom(ctx); ok && p.Username != "" {
		return p.Username
	}
	return "anonymous"
}
