package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freshcodes/identity-gateway/internal/api/metrics"
	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
	"github.com/freshcodes/identity-gateway/pkg/httpident"
)

// Options configures one Identity middleware instantiation.
type Options struct {
	// HeaderName is the primary identity header. Defaults to
	// httpident.DefaultIdentityHeader.
	HeaderName string
	// AutoCreate provisions a base-role user for unknown identities.
	AutoCreate bool
	// RequiredRoles restricts the route; empty means any resolved user passes.
	RequiredRoles []string
}

// Identity resolves the caller-asserted identity headers against the verifier
// and injects the user into the echo context. Rejections are raised as
// *echo.HTTPError and translated by the central error handler: 401 for a
// missing or unknown identity, 403 for a role mismatch. Store failures
// propagate as opaque errors (500).
func Identity(verifier ports.UserVerifier, opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			identity := httpident.ExtractIdentity(c.Request().Header, opts.HeaderName)
			if identity == "" {
				return rejectUnauthorized(c, start, "missing user identity")
			}

			user, err := verifier.GetUser(c.Request().Context(), identity)
			if errors.Is(err, domain.ErrUserNotFound) && opts.AutoCreate {
				user, err = verifier.CreateUser(c.Request().Context(), domain.NewUserParams{
					Email:       identity,
					DisplayName: identity,
				})
				if err == nil {
					metrics.UsersAutoCreatedTotal.Inc()
				}
			}
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return rejectUnauthorized(c, start, "unknown user identity")
				}
				observe(start, "error")
				return err
			}

			if !user.HasRole(opts.RequiredRoles) {
				metrics.RoleDenialsTotal.WithLabelValues(user.Role).Inc()
				observe(start, "forbidden")
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}

			c.Set("user", user)
			c.Set("user_id", user.UserID)
			c.Set("user_email", user.Email)
			c.Set("user_role", user.Role)

			observe(start, "ok")
			return next(c)
		}
	}
}

func rejectUnauthorized(c echo.Context, start time.Time, msg string) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	observe(start, "unauthorized")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

func observe(start time.Time, result string) {
	metrics.ResolutionsTotal.WithLabelValues(result).Inc()
	metrics.ResolutionDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
