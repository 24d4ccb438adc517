package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadastroweb/portal/internal/api/session"
)

// UserContextKey is where RequireUser stores the session user for handlers.
const UserContextKey = "session_user"

// RequireUser gates protected views: unauthenticated requests are redirected
// to the login page, authenticated ones get the session user injected into
// the request context.
func RequireUser(sessions session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := sessions.CurrentUser(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/")
			}
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
