package auth

import (
	"backoffice/internal/admin"
	"context"
	"log/slog"
	"net/http"
)

const (
	ViewLogin        = "login"
	ViewGeneralError = "general-error"

	forbiddenMessage = "Sorry, you're not allowed to perform this action"
)

// CapabilityAuthorizer checks the principal attached to the request context.
type CapabilityAuthorizer struct {
	defaultLocaleID int64
	logger          *slog.Logger
}

var (
	_ admin.Authorizer     = (*CapabilityAuthorizer)(nil)
	_ admin.LocaleProvider = (*CapabilityAuthorizer)(nil)
)

func NewCapabilityAuthorizer(defaultLocaleID int64, logger *slog.Logger) *CapabilityAuthorizer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CapabilityAuthorizer{
		defaultLocaleID: defaultLocaleID,
		logger:          logger.With("component", "CapabilityAuthorizer"),
	}
}

func (a *CapabilityAuthorizer) Authorize(ctx context.Context, capability string) *admin.Result {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		a.logger.WarnContext(ctx, "Unauthenticated access attempt", slog.String("capability", capability))
		res := admin.Render(ViewLogin, nil)
		res.Status = http.StatusUnauthorized
		return res
	}
	if !p.Can(capability) {
		a.logger.WarnContext(ctx, "Capability denied", slog.String("username", p.Username), slog.String("capability", capability))
		res := admin.Render(ViewGeneralError, nil)
		res.Status = http.StatusForbidden
		res.Error = forbiddenMessage
		return res
	}
	return nil
}

func (a *CapabilityAuthorizer) CurrentLocaleID(ctx context.Context) int64 {
	if p, ok := PrincipalFrom(ctx); ok && p.LocaleID > 0 {
		return p.LocaleID
	}
	return a.defaultLocaleID
}
