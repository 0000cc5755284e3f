package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(secret, time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := svc.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenRejections(t *testing.T) {
	svc, err := NewTokenService(secret, time.Hour)
	require.NoError(t, err)

	t.Run("Should reject empty token", func(t *testing.T) {
		_, err := svc.Parse("")
		assert.Error(t, err)
	})

	t.Run("Should reject token signed with another secret", func(t *testing.T) {
		other, err := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue(1)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Should reject expired token", func(t *testing.T) {
		token, _, err := svc.Issue(1)
		require.NoError(t, err)

		later := *svc
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Should reject unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.Error(t, err)
	})
}

func TestNewTokenServiceValidation(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenService(secret, 0)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)
	assert.True(t, h.Compare(hash, "pw123"))
	assert.False(t, h.Compare(hash, "pw124"))

	again, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted hashes differ")
}
