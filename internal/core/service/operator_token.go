package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleOperator is the only role allowed to read the cross-user summary.
const RoleOperator = "admin"

const defaultOperatorTTL = 24 * time.Hour

// MintOperatorToken issues an HS256 token accepted by middleware.Auth.
func MintOperatorToken(secret, username string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("operator token: JWT secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaultOperatorTTL
	}

	claims := jwt.MapClaims{
		"username": username,
		"role":     RoleOperator,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
