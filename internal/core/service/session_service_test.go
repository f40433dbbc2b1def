package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

func newSessionFixture(store *stubMasterStore) (*TokenCodec, ports.SessionService) {
	codec := NewTokenCodec("secret", time.Hour)
	svc := NewSessionService(
		NewCredentialVerifier(store),
		NewLinkResolver(store),
		codec,
		store,
		zerolog.Nop(),
	)
	return codec, svc
}

func TestSessionService_Login_TokenMirrorsLinkSet(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "s3cret")
	store.links["u1"] = []domain.PlatformLink{
		{UnifiedUserID: "u1", Platform: domain.PlatformFreelancer, PlatformUserID: "f1"},
		{UnifiedUserID: "u1", Platform: domain.PlatformCareerCopilot, PlatformUserID: "c1"},
	}
	codec, svc := newSessionFixture(store)

	token, summary, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(claims.Platforms) != 2 ||
		claims.Platforms[domain.PlatformFreelancer] != "f1" ||
		claims.Platforms[domain.PlatformCareerCopilot] != "c1" {
		t.Fatalf("token platforms must equal link set, got %+v", claims.Platforms)
	}

	if summary == nil || summary.ID != "u1" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	names := append([]string(nil), summary.Platforms...)
	sort.Strings(names)
	if len(names) != 2 || names[0] != "career_copilot" || names[1] != "freelancer" {
		t.Fatalf("unexpected platform names: %v", names)
	}
	if !summary.HasFreelancerProfile || !summary.HasLearningProfile {
		t.Fatalf("capability flags must mirror links: %+v", summary)
	}
}

func TestSessionService_Login_NoLinks(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u2", "bob@example.com", "pw")
	codec, svc := newSessionFixture(store)

	token, summary, err := svc.Login(context.Background(), "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if len(claims.Platforms) != 0 {
		t.Fatalf("expected empty platforms, got %+v", claims.Platforms)
	}
	if summary.HasFreelancerProfile || summary.HasLearningProfile {
		t.Fatalf("expected capability flags off: %+v", summary)
	}
}

func TestSessionService_Login_RecordsTimestamp(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "s3cret")
	_, svc := newSessionFixture(store)

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if _, ok := store.logins["u1"]; !ok {
		t.Fatalf("expected login timestamp to be recorded")
	}
}

func TestSessionService_Login_TimestampFailureIsBestEffort(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "s3cret")
	store.loginErr = errors.New("write failed")
	_, svc := newSessionFixture(store)

	token, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login must succeed despite timestamp failure, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u1", "b@x.com", "p1")
	_, svc := newSessionFixture(store)

	if _, _, err := svc.Login(context.Background(), "a@x.com", "p1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "b@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_LinkResolutionFailureIsTerminal(t *testing.T) {
	store := newStubMasterStore()
	store.addUser("u1", "alice@example.com", "s3cret")
	store.linksErr = errors.New("links unavailable")
	_, svc := newSessionFixture(store)

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret"); err != store.linksErr {
		t.Fatalf("expected link error to propagate, got %v", err)
	}
}
