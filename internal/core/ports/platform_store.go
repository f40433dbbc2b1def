package ports

import (
	"context"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// PlatformStore reads profile records from one product's own store, keyed by
// that platform's local user id.
type PlatformStore interface {
	FindPlatformRecord(ctx context.Context, platformUserID string) (domain.PlatformRecord, error)
}
