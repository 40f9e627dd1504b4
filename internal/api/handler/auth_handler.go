package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/api/metrics"
	"github.com/planvista/visionboard-api/internal/api/middleware"
	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// Login authenticates the caller and opens a session.
//
// On success the session cookie is set and the caller is redirected to the
// application root (the login form is a plain POST, not an XHR). On failure a
// bare 401 goes back with no detail that would distinguish an unknown account
// from a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}

	user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.NoContent(http.StatusUnauthorized)
		}
		return err
	}

	token, err := h.sessions.Create(c.Request().Context(), domain.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token, h.sessions.TTL())
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Logout terminates the caller's session and redirects to the login page.
// Registered for every method: the SPA uses a link, older clients POST.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil {
		_ = h.sessions.Destroy(c.Request().Context(), cookie.Value)
	}
	middleware.SetSessionCookie(c, "", -time.Hour)
	return c.Redirect(http.StatusFound, "/login")
}

// Register creates a new account.
//
// The response contract is fixed by the registration form: failures come back
// with a 200 status and {result:false, errorMessage, errorField} so the form
// can highlight the field, successes with {result:true, user}. Only an
// unexpected store error produces a 500.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, registerResponse{
			Result:       false,
			ErrorMessage: "invalid payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, registerResponse{
			Result:       false,
			ErrorMessage: err.Error(),
			ErrorField:   firstFailedField(err),
		})
	}

	user, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
			return c.JSON(http.StatusOK, registerResponse{
				Result:       false,
				ErrorMessage: "Account with E-Mail already exists!",
				ErrorField:   "email",
			})
		case errors.Is(err, domain.ErrUsernameTaken):
			metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
			return c.JSON(http.StatusOK, registerResponse{
				Result:       false,
				ErrorMessage: "Username is taken!",
				ErrorField:   "username",
			})
		case errors.Is(err, domain.ErrPasswordUnusable):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusOK, registerResponse{
				Result:       false,
				ErrorMessage: "Password is too long!",
				ErrorField:   "password",
			})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, registerResponse{Result: true, User: user})
}

// ChangePassword replaces the caller's password after verifying the current
// one. This is the only route that touches a password hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrPasswordUnusable):
			return echo.NewHTTPError(http.StatusBadRequest, "password cannot be used")
		}
		return err
	}
	return c.NoContent(http.StatusOK)
}
