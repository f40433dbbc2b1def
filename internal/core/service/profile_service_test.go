package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

// stubPlatformStore serves a single record, optionally failing or hanging.
type stubPlatformStore struct {
	record domain.PlatformRecord
	err    error
	delay  time.Duration
}

func (s *stubPlatformStore) FindPlatformRecord(ctx context.Context, _ string) (domain.PlatformRecord, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func linkedStore() *stubMasterStore {
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "pw")
	store.links["u1"] = []domain.PlatformLink{
		{UnifiedUserID: "u1", Platform: domain.PlatformFreelancer, PlatformUserID: "f1"},
		{UnifiedUserID: "u1", Platform: domain.PlatformCareerCopilot, PlatformUserID: "c1"},
	}
	return store
}

func newProfileService(master *stubMasterStore, platforms map[domain.Platform]ports.PlatformStore, timeout time.Duration) ports.ProfileService {
	return NewProfileService(master, NewLinkResolver(master), platforms, timeout, zerolog.Nop())
}

func TestProfileService_Aggregate_AllAvailable(t *testing.T) {
	svc := newProfileService(linkedStore(), map[domain.Platform]ports.PlatformStore{
		domain.PlatformFreelancer:    &stubPlatformStore{record: domain.PlatformRecord{"headline": "Go dev"}},
		domain.PlatformCareerCopilot: &stubPlatformStore{record: domain.PlatformRecord{"track": "backend"}},
	}, time.Second)

	view, err := svc.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if view.Identity.ID != "u1" || view.Identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", view.Identity)
	}
	if len(view.Platforms) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(view.Platforms))
	}
	for p, section := range view.Platforms {
		if !section.Active || !section.Available || section.Record == nil {
			t.Fatalf("platform %s: expected available section, got %+v", p, section)
		}
	}
	if view.Stats.LinkedPlatforms != 2 || view.Stats.AvailablePlatforms != 2 {
		t.Fatalf("unexpected stats: %+v", view.Stats)
	}
}

func TestProfileService_Aggregate_PartialFailureIsolated(t *testing.T) {
	svc := newProfileService(linkedStore(), map[domain.Platform]ports.PlatformStore{
		domain.PlatformFreelancer:    &stubPlatformStore{err: errors.New("connection refused")},
		domain.PlatformCareerCopilot: &stubPlatformStore{record: domain.PlatformRecord{"track": "backend"}},
	}, time.Second)

	view, err := svc.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("partial failure must not fail aggregation: %v", err)
	}

	fr := view.Platforms[domain.PlatformFreelancer]
	if !fr.Active || fr.Available || fr.Record != nil {
		t.Fatalf("freelancer section must degrade to active-but-unavailable: %+v", fr)
	}
	cc := view.Platforms[domain.PlatformCareerCopilot]
	if !cc.Active || !cc.Available {
		t.Fatalf("career section must stay populated: %+v", cc)
	}
	if view.Stats.LinkedPlatforms != 2 || view.Stats.AvailablePlatforms != 1 {
		t.Fatalf("unexpected stats: %+v", view.Stats)
	}
}

func TestProfileService_Aggregate_SlowStoreTimesOut(t *testing.T) {
	svc := newProfileService(linkedStore(), map[domain.Platform]ports.PlatformStore{
		domain.PlatformFreelancer:    &stubPlatformStore{record: domain.PlatformRecord{"ok": true}, delay: 200 * time.Millisecond},
		domain.PlatformCareerCopilot: &stubPlatformStore{record: domain.PlatformRecord{"track": "backend"}},
	}, 20*time.Millisecond)

	start := time.Now()
	view, err := svc.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("aggregation blocked on slow store for %v", elapsed)
	}
	if view.Platforms[domain.PlatformFreelancer].Available {
		t.Fatalf("timed-out read must degrade, got %+v", view.Platforms[domain.PlatformFreelancer])
	}
}

func TestProfileService_Aggregate_MissingRecordDegrades(t *testing.T) {
	svc := newProfileService(linkedStore(), map[domain.Platform]ports.PlatformStore{
		domain.PlatformFreelancer:    &stubPlatformStore{err: domain.ErrPlatformRecordMissing},
		domain.PlatformCareerCopilot: &stubPlatformStore{record: domain.PlatformRecord{}},
	}, time.Second)

	view, err := svc.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	fr := view.Platforms[domain.PlatformFreelancer]
	if !fr.Active || fr.Available {
		t.Fatalf("missing record must degrade, got %+v", fr)
	}
}

func TestProfileService_Aggregate_UnconfiguredPlatformLink(t *testing.T) {
	// A stale link row can name a platform this deployment has no store
	// for; its section must degrade while in-flight reads for configured
	// platforms land concurrently.
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "pw")
	store.links["u1"] = []domain.PlatformLink{
		{UnifiedUserID: "u1", Platform: domain.PlatformCareerCopilot, PlatformUserID: "c1"},
		{UnifiedUserID: "u1", Platform: domain.Platform("ghost"), PlatformUserID: "g1"},
	}
	svc := newProfileService(store, map[domain.Platform]ports.PlatformStore{
		domain.PlatformCareerCopilot: &stubPlatformStore{record: domain.PlatformRecord{"track": "backend"}, delay: time.Millisecond},
	}, time.Second)

	for i := 0; i < 50; i++ {
		view, err := svc.Aggregate(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Aggregate returned error: %v", err)
		}
		ghost := view.Platforms[domain.Platform("ghost")]
		if !ghost.Active || ghost.Available || ghost.Record != nil {
			t.Fatalf("unconfigured platform must degrade to active-but-unavailable: %+v", ghost)
		}
		cc := view.Platforms[domain.PlatformCareerCopilot]
		if !cc.Active || !cc.Available {
			t.Fatalf("configured platform must stay populated: %+v", cc)
		}
		if view.Stats.LinkedPlatforms != 2 || view.Stats.AvailablePlatforms != 1 {
			t.Fatalf("unexpected stats: %+v", view.Stats)
		}
	}
}

func TestProfileService_Aggregate_IdentityVanished(t *testing.T) {
	store := linkedStore()
	store.byIDErrFor = "u1"
	svc := newProfileService(store, nil, time.Second)

	if _, err := svc.Aggregate(context.Background(), "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileService_Aggregate_NoLinks(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u2", "bob@example.com", "pw")
	svc := newProfileService(store, nil, time.Second)

	view, err := svc.Aggregate(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(view.Platforms) != 0 {
		t.Fatalf("expected no sections, got %+v", view.Platforms)
	}
	if view.Stats.LinkedPlatforms != 0 || view.Stats.AvailablePlatforms != 0 {
		t.Fatalf("unexpected stats: %+v", view.Stats)
	}
}
