package ports

import "github.com/careerstack/identity-federation/internal/core/domain"

// TokenCodec signs and verifies unified tokens. It is the only component
// with cryptographic responsibility.
type TokenCodec interface {
	Issue(claims domain.TokenClaims) (string, error)
	Verify(token string) (domain.TokenClaims, error)
}
