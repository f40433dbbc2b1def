package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
)

// identityKey is the context key the verified identity is stored under.
// Handlers retrieve it through IdentityFrom, never by key.
const identityKey = "federation.verified_identity"

// Auth verifies the bearer token and places the resulting typed
// domain.VerifiedIdentity in the request context. The identity is scoped to
// this request; nothing is attached to headers or shared state.
func Auth(codec ports.TokenCodec, revoked ports.RevocationList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.TokenID)
			if err != nil {
				return err
			}
			if isRevoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, domain.VerifiedIdentity{
				UserID:    claims.UserID,
				Email:     claims.Email,
				Platforms: claims.Platforms,
				TokenID:   claims.TokenID,
				ExpiresAt: claims.ExpiresAt,
			})

			return next(c)
		}
	}
}

// IdentityFrom returns the verified identity stored by Auth, if any.
func IdentityFrom(c echo.Context) (domain.VerifiedIdentity, bool) {
	ident, ok := c.Get(identityKey).(domain.VerifiedIdentity)
	return ident, ok
}
