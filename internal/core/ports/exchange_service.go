package ports

import (
	"context"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// ExchangeService converts a unified token into a single platform-scoped
// assertion, and withdraws tokens ahead of expiry.
type ExchangeService interface {
	Exchange(ctx context.Context, token, platform string) (domain.PlatformAssertion, error)
	Revoke(ctx context.Context, identity domain.VerifiedIdentity) error
}
