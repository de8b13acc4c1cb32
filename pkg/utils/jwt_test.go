package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maheshrc27/postcal/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims transfer.SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "sess-1", claims.Subject)
	assert.Equal(t, "postcal", claims.Issuer)
}

func TestValidateTokenRejectsWrongKeyAndExpiry(t *testing.T) {
	token, err := GenerateToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	expired, err := GenerateToken("secret", "sess-1", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken("secret", expired)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestValidateTokenRejectsForeignClaims(t *testing.T) {
	now := time.Now()
	base := jwt.RegisteredClaims{
		Subject:   "sess-1",
		Issuer:    "postcal",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	otherIssuer := base
	otherIssuer.Issuer = "someone-else"
	_, err := ValidateToken("secret", signClaims(t, jwt.SigningMethodHS256, []byte("secret"),
		transfer.SessionClaims{SessionID: "sess-1", RegisteredClaims: otherIssuer}))
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	noExpiry := base
	noExpiry.ExpiresAt = nil
	_, err = ValidateToken("secret", signClaims(t, jwt.SigningMethodHS256, []byte("secret"),
		transfer.SessionClaims{SessionID: "sess-1", RegisteredClaims: noExpiry}))
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = ValidateToken("secret", signClaims(t, jwt.SigningMethodHS512, []byte("secret"),
		transfer.SessionClaims{SessionID: "sess-1", RegisteredClaims: base}))
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = ValidateToken("secret", signClaims(t, jwt.SigningMethodHS256, []byte("secret"),
		transfer.SessionClaims{SessionID: "sess-2", RegisteredClaims: base}))
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestNeedsRefresh(t *testing.T) {
	issued := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	claims := &transfer.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(4 * time.Hour)),
	}}

	assert.False(t, NeedsRefresh(claims, issued.Add(time.Hour)))
	assert.True(t, NeedsRefresh(claims, issued.Add(3*time.Hour)))
	assert.True(t, NeedsRefresh(&transfer.SessionClaims{}, issued))
}

func TestGenerateRandomKey(t *testing.T) {
	a, err := GenerateRandomKey(32)
	require.NoError(t, err)
	b, err := GenerateRandomKey(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}
