package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidgo/internal/config"
)

var testCfg = config.AuthConfig{
	JWTSecret:          "test-secret",
	AccessTokenTTLMin:  15,
	RefreshTokenTTLMin: 60,
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcryptMinCostForTests)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "s3cret"))
}

// bcrypt.MinCost keeps the test fast; production cost comes from config.
const bcryptMinCostForTests = 4

func TestNewTokenIssuer(t *testing.T) {
	_, err := NewTokenIssuer(config.AuthConfig{})
	assert.ErrorIs(t, err, ErrSecretRequired)

	iss, err := NewTokenIssuer(testCfg)
	assert.NoError(t, err)
	assert.NotNil(t, iss)
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	iss, err := NewTokenIssuer(testCfg)
	require.NoError(t, err)

	pair, err := iss.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := iss.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	t.Run("wrong token type", func(t *testing.T) {
		_, err := iss.Verify(pair.RefreshToken, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Verify("not.a.token", TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer(config.AuthConfig{
			JWTSecret:         "different-secret",
			AccessTokenTTLMin: 15,
		})
		require.NoError(t, err)

		_, err = other.Verify(pair.AccessToken, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenIssuer_Expiry(t *testing.T) {
	iss, err := NewTokenIssuer(testCfg)
	require.NoError(t, err)

	pair, err := iss.Issue("user-1")
	require.NoError(t, err)

	// Move the issuer's clock past the access TTL.
	iss.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, err = iss.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The refresh token is still inside its TTL.
	_, err = iss.Verify(pair.RefreshToken, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestTokenIssuer_Refresh(t *testing.T) {
	iss, err := NewTokenIssuer(testCfg)
	require.NoError(t, err)

	pair, err := iss.Issue("user-1")
	require.NoError(t, err)

	fresh, err := iss.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := iss.Verify(fresh.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := iss.Refresh(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenIssuer_RejectsUnsignedAlg(t *testing.T) {
	iss, err := NewTokenIssuer(testCfg)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:    "user-1",
		TokenType: TokenTypeAccess,
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(tokenString, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
