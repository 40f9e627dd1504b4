package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

// CookieName is the session cookie set at login and read by every gate.
const CookieName = "vb_session"

// IdentityKey is the echo context key the resolved identity is stored under.
const IdentityKey = "identity"

// Identity extracts the session identity a gate attached to the context.
func Identity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok
}

// resolve reads the session cookie and maps it to an identity. A missing
// cookie, an expired record, or a tampered token all come back as not-ok;
// the gates never learn which.
func resolve(c echo.Context, sessions ports.SessionService) (domain.Identity, string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return domain.Identity{}, "", false
	}

	identity, err := sessions.Resolve(c.Request().Context(), cookie.Value)
	if err != nil {
		return domain.Identity{}, "", false
	}
	return identity, cookie.Value, true
}

// SetSessionCookie writes the session cookie. Shared by the login and logout
// handlers and the gates, so every writer agrees on the cookie attributes.
func SetSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// touch slides the session expiration. When the record was actually
// refreshed the cookie is re-issued with a full lifetime, so the
// browser-side expiry slides along with the server-side TTL. Best effort:
// a failed touch must not fail an otherwise valid request.
func touch(c echo.Context, sessions ports.SessionService, token string) {
	refreshed, err := sessions.Touch(c.Request().Context(), token)
	if err == nil && refreshed {
		SetSessionCookie(c, token, sessions.TTL())
	}
}

// RequireAuthenticated guards page routes: without a valid session the
// request is redirected to the login page.
func RequireAuthenticated(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, token, ok := resolve(c, sessions)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			touch(c, sessions, token)
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// RequireUnauthenticated guards the login and registration routes: a caller
// who already holds a valid session is sent back to the application root
// instead of opening a second one.
func RequireUnauthenticated(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, _, ok := resolve(c, sessions); ok {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}

// RequireAPIAuthenticated guards JSON API routes: without a valid session the
// request is rejected with a bare 401. No redirect — API clients must not
// follow one silently.
func RequireAPIAuthenticated(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, token, ok := resolve(c, sessions)
			if !ok {
				return c.NoContent(http.StatusUnauthorized)
			}
			touch(c, sessions, token)
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}
