package middleware

import (
	"backoffice/internal/auth"
	"backoffice/internal/config"
	"log/slog"
	"net/http"
	"strings"
)

type TokenParser interface {
	Parse(tokenString string) (*auth.Principal, error)
}

// AuthMiddleware attaches the requesting administrator to the context. It
// never rejects a request: without a principal the workflow answers with the
// login view. When auth is disabled every request runs as a superuser.
func AuthMiddleware(cfg config.AuthConfig, parser TokenParser, defaultLocaleID int64, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "AuthMiddleware")
	if !cfg.Enabled {
		superuser := &auth.Principal{
			Username:     "admin",
			Capabilities: []string{auth.Superuser},
			LocaleID:     defaultLocaleID,
		}
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), superuser)))
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := principalFromRequest(r, parser, logger); p != nil {
				r = r.WithContext(auth.WithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromRequest(r *http.Request, parser TokenParser, logger *slog.Logger) *auth.Principal {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.DebugContext(r.Context(), "Missing Authorization header")
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.WarnContext(r.Context(), "Invalid Authorization header format")
		return nil
	}

	p, err := parser.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		logger.WarnContext(r.Context(), "Invalid token", "error", err)
		return nil
	}

	logger.DebugContext(r.Context(), "Authenticated request", "username", p.Username)
	return p
}
