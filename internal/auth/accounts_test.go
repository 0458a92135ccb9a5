package auth

import (
	"backoffice/internal/admin"
	"backoffice/internal/config"
	"backoffice/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountDirectoryAuthenticate(t *testing.T) {
	dir := NewAccountDirectory([]config.AdminAccount{
		{Username: "jane", PasswordHash: hashPassword(t, "s3cret-pass"), Capabilities: []string{admin.CapabilityView}, LocaleID: 2},
		{Username: "broken", PasswordHash: "not-a-bcrypt-hash"},
		{Username: "", PasswordHash: hashPassword(t, "x")},
		{Username: "nohash"},
	})
	assert.Equal(t, 2, dir.Len())

	t.Run("valid credentials resolve the configured principal", func(t *testing.T) {
		p, err := dir.Authenticate("jane", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "jane", p.Username)
		assert.Equal(t, []string{admin.CapabilityView}, p.Capabilities)
		assert.Equal(t, int64(2), p.LocaleID)
		assert.False(t, p.Can(admin.CapabilityDelete))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := dir.Authenticate("jane", "guess")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown user gets the same error as a wrong password", func(t *testing.T) {
		_, unknownErr := dir.Authenticate("mallory", "s3cret-pass")
		_, wrongErr := dir.Authenticate("jane", "guess")
		assert.ErrorIs(t, unknownErr, apperrors.ErrUnauthorized)
		assert.Equal(t, wrongErr.Error(), unknownErr.Error())
	})

	t.Run("accounts without a hash cannot log in", func(t *testing.T) {
		_, err := dir.Authenticate("nohash", "")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unusable stored hash", func(t *testing.T) {
		_, err := dir.Authenticate("broken", "anything")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("username is required", func(t *testing.T) {
		_, err := dir.Authenticate("", "s3cret-pass")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("returned capabilities are a copy", func(t *testing.T) {
		p, err := dir.Authenticate("jane", "s3cret-pass")
		require.NoError(t, err)
		p.Capabilities[0] = Superuser

		again, err := dir.Authenticate("jane", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, []string{admin.CapabilityView}, again.Capabilities)
	})
}
