// internal/infra/jwtauth/verifier.jwt.go
package jwtauth

import (
	"context"
	"fmt"

	domainErrors "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/principal"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ crypto.TokenVerifier = (*Verifier)(nil)

// Verifier validates HMAC-signed bearer tokens minted by the identity
// provider. It only checks signature, expiry and the two claims this
// service cares about: `sub` (principal id) and `role`.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (principal.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return principal.Principal{}, domainErrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return principal.Principal{}, domainErrors.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return principal.Principal{}, domainErrors.ErrUnauthorized
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return principal.Principal{}, domainErrors.ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return principal.Principal{}, domainErrors.ErrUnauthorized
	}

	return principal.Principal{ID: id, Role: principal.Role(role)}, nil
}
