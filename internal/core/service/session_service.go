package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerstack/identity-federation/internal/api/metrics"
	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

// credentialVerifier abstracts the credential check for the login flow.
type credentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.UnifiedUser, error)
}

// linkResolver abstracts platform link resolution.
type linkResolver interface {
	LinksFor(ctx context.Context, unifiedUserID string) (map[domain.Platform]string, error)
}

type sessionService struct {
	verifier credentialVerifier
	resolver linkResolver
	codec    ports.TokenCodec
	store    ports.MasterStore
	log      zerolog.Logger
}

// NewSessionService returns the login flow implementation: verify the
// credential, resolve links, stamp the login, issue the token.
func NewSessionService(
	verifier credentialVerifier,
	resolver linkResolver,
	codec ports.TokenCodec,
	store ports.MasterStore,
	log zerolog.Logger,
) ports.SessionService {
	return &sessionService{
		verifier: verifier,
		resolver: resolver,
		codec:    codec,
		store:    store,
		log:      log,
	}
}

func (s *sessionService) Login(ctx context.Context, email, password string) (string, *domain.UserSummary, error) {
	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return "", nil, err
	}

	links, err := s.resolver.LinksFor(ctx, user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	// Best-effort audit stamp. Concurrent logins race last-writer-wins;
	// a failed write never blocks the login.
	if err := s.store.RecordLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record login timestamp")
	}

	token, err := s.codec.Issue(domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Platforms: links,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Int("platforms", len(links)).Msg("session issued")

	return token, summarize(user, links), nil
}

// summarize builds the denormalized post-login view. Capability flags are
// derived from the resolved links, not the stored flags, so the summary
// always mirrors the link set the token was minted from.
func summarize(user *domain.UnifiedUser, links map[domain.Platform]string) *domain.UserSummary {
	names := make([]string, 0, len(links))
	for p := range links {
		names = append(names, string(p))
	}

	_, freelancer := links[domain.PlatformFreelancer]
	_, learning := links[domain.PlatformCareerCopilot]

	return &domain.UserSummary{
		ID:                   user.ID,
		Email:                user.Email,
		FullName:             user.FullName,
		Platforms:            names,
		HasFreelancerProfile: freelancer,
		HasLearningProfile:   learning,
	}
}
