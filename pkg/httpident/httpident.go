// Package httpident propagates a caller-asserted identity from request
// headers into the request context for plain net/http applications.
//
// The identity claim is an unsigned header value; nothing here verifies
// credentials. Real authentication is expected to happen upstream (a gateway
// or reverse proxy that strips and rewrites these headers).
package httpident

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
)

const (
	// DefaultIdentityHeader is the primary header carrying the identity claim.
	DefaultIdentityHeader = "X-User-Email"

	userIDHeader        = "X-User-Id"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// Options configures one middleware instantiation.
type Options struct {
	// HeaderName is the primary header to read. Defaults to DefaultIdentityHeader.
	HeaderName string
	// AutoCreate provisions a base-role user for unknown identities instead of
	// rejecting with 401. Off by default; see config.IdentityConfig for the
	// security implications.
	AutoCreate bool
	// RequiredRoles restricts the route to users holding one of these roles.
	// Empty means no restriction.
	RequiredRoles []string
}

// ExtractIdentity pulls the identity claim from the request headers: the
// primary header first, then X-User-Id, then Authorization. A bearer-shaped
// Authorization value has its prefix stripped; if the remainder parses as a
// JWT, the email (then sub) claim is used — without signature verification.
// Returns "" when no header carries an identity.
func ExtractIdentity(h http.Header, primary string) string {
	if primary == "" {
		primary = DefaultIdentityHeader
	}
	if v := h.Get(primary); v != "" {
		return v
	}
	if v := h.Get(userIDHeader); v != "" {
		return v
	}

	auth := h.Get(authorizationHeader)
	if auth == "" {
		return ""
	}
	if len(auth) > len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return identityFromBearer(strings.TrimSpace(auth[len(bearerPrefix):]))
	}
	return auth
}

// identityFromBearer extracts an identity from an opaque bearer value. JWTs
// get their email/sub claim pulled out unverified; anything else is used raw.
func identityFromBearer(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return token
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return token
}

type ctxKey struct{}

// FromContext returns the user attached by Middleware, if any.
func FromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*domain.User)
	return u, ok
}

// Middleware resolves the request identity against the verifier and either
// attaches the user to the request context or short-circuits with a JSON
// error response (401 for missing/unknown identity, 403 for a role mismatch,
// 500 for a store failure).
func Middleware(verifier ports.UserVerifier, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ExtractIdentity(r.Header, opts.HeaderName)
			if identity == "" {
				unauthorized(w, "missing user identity")
				return
			}

			user, err := verifier.GetUser(r.Context(), identity)
			if errors.Is(err, domain.ErrUserNotFound) && opts.AutoCreate {
				// The original record carries the full identity as display name.
				user, err = verifier.CreateUser(r.Context(), domain.NewUserParams{
					Email:       identity,
					DisplayName: identity,
				})
			}
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					unauthorized(w, "unknown user identity")
					return
				}
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !user.HasRole(opts.RequiredRoles) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
