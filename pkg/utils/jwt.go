package utils

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maheshrc27/postcal/internal/transfer"
)

const tokenIssuer = "postcal"

var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateToken signs a session cookie token for sessionID valid for tokenDuration.
func GenerateToken(secretKey, sessionID string, tokenDuration time.Duration) (string, error) {
	now := time.Now()
	claims := transfer.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secretKey))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return signedToken, nil
}

// ValidateToken accepts only HS256 tokens issued by GenerateToken whose subject
// matches the session id they carry.
func ValidateToken(secretKey, tokenString string) (*transfer.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &transfer.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*transfer.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" || claims.Subject != claims.SessionID {
		return nil, ErrInvalidSessionToken
	}

	return claims, nil
}

// NeedsRefresh reports whether less than half of the token's lifetime is left.
func NeedsRefresh(claims *transfer.SessionClaims, now time.Time) bool {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return true
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	return claims.ExpiresAt.Sub(now) < lifetime/2
}
