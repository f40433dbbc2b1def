package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// unifiedClaims is the wire shape of a unified token: the platform map plus
// the standard registered claims (sub, jti, iat, exp).
type unifiedClaims struct {
	Email     string                     `json:"email"`
	Platforms map[domain.Platform]string `json:"platforms"`
	jwt.RegisteredClaims
}

// TokenCodec signs claim sets with a process-wide HS256 secret. Rotating the
// secret invalidates every outstanding token; there is no grace period.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the given validity window. A zero ttl
// falls back to the 7-day default.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed, time-bounded token for the given claims. It fails
// only on signing faults, which callers treat as internal errors.
func (c *TokenCodec) Issue(claims domain.TokenClaims) (string, error) {
	now := time.Now().UTC()
	wc := unifiedClaims{
		Email:     claims.Email,
		Platforms: claims.Platforms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, wc)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token, mapping jwt failures onto the domain
// taxonomy: bad signature → ErrTokenInvalid, past expiry → ErrTokenExpired,
// anything unparseable → ErrTokenMalformed.
func (c *TokenCodec) Verify(token string) (domain.TokenClaims, error) {
	var wc unifiedClaims
	tkn, err := jwt.ParseWithClaims(token, &wc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.TokenClaims{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.TokenClaims{}, domain.ErrTokenInvalid
		default:
			return domain.TokenClaims{}, domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}

	platforms := wc.Platforms
	if platforms == nil {
		platforms = map[domain.Platform]string{}
	}

	var expiresAt time.Time
	if wc.ExpiresAt != nil {
		expiresAt = wc.ExpiresAt.Time
	}

	return domain.TokenClaims{
		UserID:    wc.Subject,
		Email:     wc.Email,
		Platforms: platforms,
		TokenID:   wc.ID,
		ExpiresAt: expiresAt,
	}, nil
}
