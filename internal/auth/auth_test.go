package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/nail-salon-api/internal/session"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	id := session.Identity{UserID: "u1", Email: "ana@example.com", Role: "client"}
	tok, err := issuer.GenerateJWT(id)
	require.NoError(t, err)

	got, err := issuer.ValidateJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenRejections(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	tok, err := other.GenerateJWT(session.Identity{UserID: "u1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := issuer.ValidateJWT(tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old := time.Now().Add(-2 * time.Hour)
		issuer.now = func() time.Time { return old }
		stale, err := issuer.GenerateJWT(session.Identity{UserID: "u1"})
		require.NoError(t, err)
		issuer.now = time.Now
		_, err = issuer.ValidateJWT(stale)
		assert.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
		raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.ValidateJWT(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.ValidateJWT("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	pw, err := NewPasswords(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := pw.Hash("longenough")
	require.NoError(t, err)
	assert.True(t, pw.Check("longenough", hash))
	assert.False(t, pw.Check("wrong", hash))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	// hashes from before a cost change keep working
	stronger, err := NewPasswords(bcrypt.MinCost + 1)
	require.NoError(t, err)
	assert.True(t, stronger.Check("longenough", hash))
}

func TestNewPasswordsCost(t *testing.T) {
	pw, err := NewPasswords(0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, pw.cost)

	_, err = NewPasswords(bcrypt.MaxCost + 1)
	assert.Error(t, err)
	_, err = NewPasswords(2)
	assert.Error(t, err)
}
