package crypto

import (
	"context"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/principal"
)

// TokenVerifier checks a caller's bearer credential and yields the
// principal it represents. Token issuance belongs to the identity
// provider; only verification lives in this service.
type TokenVerifier interface {
	// Verify returns ErrUnauthorized for missing, malformed or expired
	// credentials.
	Verify(ctx context.Context, token string) (principal.Principal, error)
}
