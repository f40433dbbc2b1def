package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerstack/identity-federation/internal/core/ports"
)

type ExchangeHandler struct {
	exchanges ports.ExchangeService
}

func NewExchangeHandler(exchanges ports.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchanges: exchanges}
}

type exchangeRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

// Exchange converts a unified token into a platform-scoped identity
// assertion. The caller only ever learns the id within its own namespace.
//
// @Summary      Exchange a unified token for a platform assertion
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        body  body      exchangeRequest  true  "Token and target platform"
// @Success      200   {object}  domain.PlatformAssertion
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /token/exchange [post]
func (h *ExchangeHandler) Exchange(c echo.Context) error {
	var req exchangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assertion, err := h.exchanges.Exchange(c.Request().Context(), req.Token, req.Platform)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assertion)
}

// Revoke withdraws the presented bearer token for the remainder of its
// validity window.
//
// @Summary      Revoke the presented token
// @Tags         token
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /token/revoke [post]
func (h *ExchangeHandler) Revoke(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.exchanges.Revoke(c.Request().Context(), identity); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
