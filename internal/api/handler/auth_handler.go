package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/internal/api/metrics"
	"github.com/cadastroweb/portal/internal/api/session"
	"github.com/cadastroweb/portal/internal/core/domain"
	"github.com/cadastroweb/portal/internal/core/ports"
)

// AuthHandler owns the registration, login and logout flows.
type AuthHandler struct {
	authService ports.AuthService
	sessions    session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type registerForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Register handles POST /cadastro: hash the password, store the user,
// redirect to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_form").Inc()
		return c.String(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_form").Inc()
		return c.String(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Name, form.Email, form.Password); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
			return c.String(http.StatusConflict, err.Error())
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusInternalServerError, err.Error())
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Login handles POST /login: look the user up by email, verify the password,
// bind the user to the session and redirect to the dashboard. The lookup and
// verification rejections are normal negative results, not internal errors.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoginsTotal.WithLabelValues("email_not_found").Inc()
		return c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return c.String(http.StatusBadRequest, err.Error())
	case err != nil:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusInternalServerError, err.Error())
	}

	if err := h.sessions.Start(c, user); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.String(http.StatusInternalServerError, err.Error())
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout handles GET /logout: destroy the whole session. A failed teardown is
// reported to the caller; the second of two back-to-back logouts operates on
// an already-cleared session and still redirects.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	metrics.LogoutsTotal.Inc()
	return c.Redirect(http.StatusFound, "/")
}
