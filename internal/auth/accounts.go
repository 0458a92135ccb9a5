package auth

import (
	"backoffice/internal/config"
	"backoffice/internal/pkg/apperrors"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("backoffice-unknown-account"), bcrypt.MinCost)

// AccountDirectory resolves administrator credentials to principals. The
// capabilities and locale of a principal always come from the configured
// account, never from the caller.
type AccountDirectory struct {
	accounts map[string]config.AdminAccount
}

func NewAccountDirectory(accounts []config.AdminAccount) *AccountDirectory {
	d := &AccountDirectory{accounts: make(map[string]config.AdminAccount, len(accounts))}
	for _, a := range accounts {
		if a.Username == "" || a.PasswordHash == "" {
			continue
		}
		d.accounts[a.Username] = a
	}
	return d
}

func (d *AccountDirectory) Len() int {
	return len(d.accounts)
}

func (d *AccountDirectory) Authenticate(username, password string) (*Principal, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrInvalidArgument)
	}
	acct, ok := d.accounts[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("%w: stored hash for %s is unusable: %w", apperrors.ErrUnauthorized, username, err)
	}
	caps := make([]string, len(acct.Capabilities))
	copy(caps, acct.Capabilities)
	return &Principal{Username: acct.Username, Capabilities: caps, LocaleID: acct.LocaleID}, nil
}
