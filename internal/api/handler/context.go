package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/api/middleware"
	"github.com/planvista/visionboard-api/internal/core/domain"
)

// ctxIdentity extracts the session identity attached by the authorization
// gate. Its presence proves the gate ran; a handler reached without it is a
// wiring bug and fails closed with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.Identity(c)
	if !ok || identity.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return identity, nil
}
