package ports

import (
	"context"
	"time"
)

// RevocationList tracks token ids withdrawn before their natural expiry.
// Entries only need to live as long as the token they shadow.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
