package handler

import (
	"backoffice/internal/api/handler/dto"
	"backoffice/internal/auth"
	"backoffice/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}

// Authenticator checks administrator credentials and returns the principal
// configured for the account.
type Authenticator interface {
	Authenticate(username, password string) (*auth.Principal, error)
}

type AuthHandler struct {
	accounts Authenticator
	issuer   TokenIssuer
	logger   *slog.Logger
}

func NewAuthHandler(accounts Authenticator, issuer TokenIssuer, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		issuer:   issuer,
		logger:   l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken issues a JWT bearer token for a back-office administrator.
//
// @Summary Generate a JWT bearer token
// @Description Checks the administrator's credentials and issues a signed token carrying the capabilities and locale configured for the account.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Administrator credentials"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	h.logger.InfoContext(r.Context(), "Generating bearer token")
	if err := decodeJSON(r, &req); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to decode request body", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	principal, err := h.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "token request rejected", "username", req.Username, slog.Any("error", err))
		respondError(w, err)
		return
	}

	token, err := h.issuer.Issue(*principal)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue token", "username", req.Username, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: fmt.Sprintf("Bearer %s", token)})
}
