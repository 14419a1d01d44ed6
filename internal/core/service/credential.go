package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// ParseCredential decodes the remote platform's access token without verifying
// its signature. The token must carry a non-empty "user.id" claim.
func ParseCredential(token string) (domain.Credential, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Credential{}, fmt.Errorf("%w: empty token", domain.ErrMalformedCredential)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %v", domain.ErrMalformedCredential, err)
	}

	user, _ := claims["user"].(map[string]any)
	id, _ := user["id"].(string)
	if id == "" {
		return domain.Credential{}, fmt.Errorf("%w: missing user id claim", domain.ErrMalformedCredential)
	}

	return domain.Credential{Token: token, RemoteUserID: id}, nil
}
