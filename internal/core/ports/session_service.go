package ports

import (
	"context"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// SessionService is the login flow: credential check, link resolution,
// token issuance.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, *domain.UserSummary, error)
}
