package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerstack/identity-federation/internal/api/metrics"
	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

type exchangeService struct {
	codec   ports.TokenCodec
	revoked ports.RevocationList
	log     zerolog.Logger
}

// NewExchangeService returns the trust-boundary implementation: a caller
// presenting a unified token can only ever learn its own platform's id.
func NewExchangeService(codec ports.TokenCodec, revoked ports.RevocationList, log zerolog.Logger) ports.ExchangeService {
	return &exchangeService{codec: codec, revoked: revoked, log: log}
}

func (s *exchangeService) Exchange(ctx context.Context, token, platform string) (domain.PlatformAssertion, error) {
	p, err := domain.ParsePlatform(platform)
	if err != nil {
		metrics.ExchangesTotal.WithLabelValues(platform, "unknown_platform").Inc()
		return domain.PlatformAssertion{}, err
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		metrics.ExchangesTotal.WithLabelValues(platform, "invalid_token").Inc()
		return domain.PlatformAssertion{}, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return domain.PlatformAssertion{}, err
	}
	if revoked {
		metrics.ExchangesTotal.WithLabelValues(platform, "revoked").Inc()
		return domain.PlatformAssertion{}, domain.ErrTokenRevoked
	}

	platformUserID, ok := claims.Platforms[p]
	if !ok {
		metrics.ExchangesTotal.WithLabelValues(platform, "not_linked").Inc()
		return domain.PlatformAssertion{}, domain.ErrPlatformNotLinked
	}

	metrics.ExchangesTotal.WithLabelValues(platform, "success").Inc()
	s.log.Debug().Str("user_id", claims.UserID).Str("platform", platform).Msg("token exchanged")

	return domain.PlatformAssertion{
		UserID: platformUserID,
		Email:  claims.Email,
	}, nil
}

// Revoke withdraws an already-verified token for the remainder of its
// validity window. Platform unlinking takes effect immediately for holders
// of revoked tokens instead of waiting out the expiry.
func (s *exchangeService) Revoke(ctx context.Context, identity domain.VerifiedIdentity) error {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return err
	}
	metrics.TokenRevocationsTotal.Inc()
	s.log.Info().Str("user_id", identity.UserID).Str("token_id", identity.TokenID).Msg("token revoked")
	return nil
}
