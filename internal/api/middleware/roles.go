package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshcodes/identity-gateway/internal/api/metrics"
)

// RequireRoles enforces a role membership check on a route whose identity has
// already been resolved by the Identity middleware.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("user_role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.RoleDenialsTotal.WithLabelValues(role).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
