package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerstack/identity-federation/internal/api/metrics"
	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

const defaultReadTimeout = 3 * time.Second

type profileService struct {
	master      ports.MasterStore
	resolver    linkResolver
	platforms   map[domain.Platform]ports.PlatformStore
	readTimeout time.Duration
	log         zerolog.Logger
}

// NewProfileService returns the read-only aggregator. Each linked platform
// store is queried concurrently with its own timeout; a slow or failed read
// degrades that platform's section, never the whole view.
func NewProfileService(
	master ports.MasterStore,
	resolver linkResolver,
	platforms map[domain.Platform]ports.PlatformStore,
	readTimeout time.Duration,
	log zerolog.Logger,
) ports.ProfileService {
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	return &profileService{
		master:      master,
		resolver:    resolver,
		platforms:   platforms,
		readTimeout: readTimeout,
		log:         log,
	}
}

func (s *profileService) Aggregate(ctx context.Context, unifiedUserID string) (*domain.ProfileView, error) {
	timer := time.Now()

	user, err := s.master.FindUserByID(ctx, unifiedUserID)
	if err != nil {
		return nil, err
	}

	links, err := s.resolver.LinksFor(ctx, unifiedUserID)
	if err != nil {
		return nil, err
	}

	view := &domain.ProfileView{
		Identity: domain.IdentitySummary{
			ID:          user.ID,
			Email:       user.Email,
			FullName:    user.FullName,
			CreatedAt:   user.CreatedAt,
			LastLoginAt: user.LastLoginAt,
		},
		Platforms: make(map[domain.Platform]domain.PlatformSection, len(links)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for platform, platformUserID := range links {
		store, ok := s.platforms[platform]
		if !ok {
			// Linked to a platform this deployment has no store for.
			s.log.Warn().Str("platform", string(platform)).Msg("no store configured for linked platform")
			mu.Lock()
			view.Platforms[platform] = domain.PlatformSection{Active: true, Available: false}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(platform domain.Platform, platformUserID string, store ports.PlatformStore) {
			defer wg.Done()

			readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
			defer cancel()

			section := s.readSection(readCtx, platform, platformUserID, store)

			mu.Lock()
			view.Platforms[platform] = section
			mu.Unlock()
		}(platform, platformUserID, store)
	}

	wg.Wait()

	view.Stats.LinkedPlatforms = len(links)
	for _, section := range view.Platforms {
		if section.Available {
			view.Stats.AvailablePlatforms++
		}
	}

	metrics.AggregationDuration.Observe(time.Since(timer).Seconds())
	return view, nil
}

func (s *profileService) readSection(ctx context.Context, platform domain.Platform, platformUserID string, store ports.PlatformStore) domain.PlatformSection {
	record, err := store.FindPlatformRecord(ctx, platformUserID)
	switch {
	case err == nil:
		metrics.ProfileReadsTotal.WithLabelValues(string(platform), "ok").Inc()
		return domain.PlatformSection{Active: true, Available: true, Record: record}
	case errors.Is(err, domain.ErrPlatformRecordMissing):
		metrics.ProfileReadsTotal.WithLabelValues(string(platform), "missing").Inc()
		s.log.Warn().Str("platform", string(platform)).Str("platform_user_id", platformUserID).Msg("platform record missing")
	default:
		metrics.ProfileReadsTotal.WithLabelValues(string(platform), "unavailable").Inc()
		s.log.Warn().Err(err).Str("platform", string(platform)).Msg("platform store read failed")
	}
	return domain.PlatformSection{Active: true, Available: false}
}
