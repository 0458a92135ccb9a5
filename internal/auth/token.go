package auth

import (
	"backoffice/internal/pkg/apperrors"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AdminClaims struct {
	Username     string   `json:"username"`
	Capabilities []string `json:"capabilities"`
	LocaleID     int64    `json:"localeId,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 admin tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(p Principal) (string, error) {
	if p.Username == "" {
		return "", fmt.Errorf("%w: username is required", apperrors.ErrInvalidArgument)
	}
	now := i.now()
	claims := AdminClaims{
		Username:     p.Username,
		Capabilities: p.Capabilities,
		LocaleID:     p.LocaleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *TokenIssuer) Parse(tokenString string) (*Principal, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, errors.New("token has no username"))
	}
	return &Principal{
		Username:     claims.Username,
		Capabilities: claims.Capabilities,
		LocaleID:     claims.LocaleID,
	}, nil
}
