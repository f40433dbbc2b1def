package ports

import (
	"context"
	"time"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// MasterStore is the read interface over the master identity store, plus the
// single best-effort write this subsystem performs (the login timestamp).
type MasterStore interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.UnifiedUser, error)
	FindUserByID(ctx context.Context, id string) (*domain.UnifiedUser, error)
	FindLinksByUser(ctx context.Context, unifiedUserID string) ([]domain.PlatformLink, error)
	RecordLogin(ctx context.Context, unifiedUserID string, at time.Time) error
}
