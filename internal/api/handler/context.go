package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerstack/identity-federation/internal/api/middleware"
	"github.com/careerstack/identity-federation/internal/core/domain"
)

// ctxIdentity extracts the verified identity injected by the Auth middleware
// and fast-fails before any service call: a populated UserID proves the
// middleware ran and the token named a subject.
func ctxIdentity(c echo.Context) (domain.VerifiedIdentity, error) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.VerifiedIdentity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	if ident.UserID == "" {
		return domain.VerifiedIdentity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}
	return ident, nil
}
