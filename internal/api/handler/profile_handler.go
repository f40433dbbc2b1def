package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerstack/identity-federation/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Profile returns the aggregated identity view for the authenticated user:
// the master record plus every linked platform's profile data, with
// unreachable platforms degraded rather than failing the request.
//
// @Summary      Aggregated cross-platform profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.ProfileView
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.profiles.Aggregate(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
