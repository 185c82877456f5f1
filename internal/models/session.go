package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims ties a signed token to an in-memory session store.
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    int64  `json:"uid"`
	jwt.RegisteredClaims
}
