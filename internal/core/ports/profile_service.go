package ports

import (
	"context"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// ProfileService merges the master record and every linked platform's
// profile data into one view. Read-only.
type ProfileService interface {
	Aggregate(ctx context.Context, unifiedUserID string) (*domain.ProfileView, error)
}
