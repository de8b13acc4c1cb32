package transfer

import "github.com/golang-jwt/jwt/v5"

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
