package service

import (
	"context"

	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

// LinkResolver maps a unified user to its platform-scoped ids. A user with
// no links resolves to an empty map, not an error.
type LinkResolver struct {
	store ports.MasterStore
}

func NewLinkResolver(store ports.MasterStore) *LinkResolver {
	return &LinkResolver{store: store}
}

func (r *LinkResolver) LinksFor(ctx context.Context, unifiedUserID string) (map[domain.Platform]string, error) {
	links, err := r.store.FindLinksByUser(ctx, unifiedUserID)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.Platform]string, len(links))
	for _, l := range links {
		out[l.Platform] = l.PlatformUserID
	}
	return out, nil
}
