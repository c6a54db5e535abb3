package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
)

// currentUser extracts the user injected by the Identity middleware and
// fast-fails before any service call when the middleware did not run.
func currentUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get("user").(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing resolved identity")
	}
	return u, nil
}
