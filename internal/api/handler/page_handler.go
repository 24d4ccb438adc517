package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/internal/api/middleware"
	"github.com/cadastroweb/portal/internal/api/session"
	"github.com/cadastroweb/portal/internal/core/domain"
	"github.com/cadastroweb/portal/internal/core/ports"
)

// PageHandler renders the HTML views.
type PageHandler struct {
	authService ports.AuthService
	sessions    session.Manager
}

func NewPageHandler(authService ports.AuthService, sessions session.Manager) *PageHandler {
	return &PageHandler{authService: authService, sessions: sessions}
}

// ShowLogin handles GET /.
func (h *PageHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// ShowRegister handles GET /cadastro.
func (h *PageHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "cadastro.html", nil)
}

// Dashboard handles GET /dashboard, behind middleware.RequireUser. The user
// is re-fetched by ID rather than rendered from the session snapshot so that
// out-of-band row changes show up; this is the one place freshness matters.
func (h *PageHandler) Dashboard(c echo.Context) error {
	sessUser, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok {
		return c.Redirect(http.StatusFound, "/")
	}

	user, err := h.authService.UserByID(c.Request().Context(), sessUser.ID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Row vanished out-of-band; the session is stale.
		_ = h.sessions.Destroy(c)
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "dashboard.html", echo.Map{"User": user})
}
