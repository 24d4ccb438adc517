package api

import (
	"database/sql"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/cadastroweb/portal/internal/api/handler"
	"github.com/cadastroweb/portal/internal/api/middleware"
	portalsession "github.com/cadastroweb/portal/internal/api/session"
	"github.com/cadastroweb/portal/internal/core/ports"
	"github.com/cadastroweb/portal/web"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, store sessions.Store, authService ports.AuthService, sessionMgr portalsession.Manager, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(portalsession.Middleware(store))

	// --- Dependencies ---
	pageHandler := handler.NewPageHandler(authService, sessionMgr)
	authHandler := handler.NewAuthHandler(authService, sessionMgr)

	// --- Pages & auth flows ---
	e.GET("/", pageHandler.ShowLogin)
	e.GET("/cadastro", pageHandler.ShowRegister)
	e.POST("/cadastro", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/dashboard", pageHandler.Dashboard, middleware.RequireUser(sessionMgr))
	e.GET("/logout", authHandler.Logout)

	e.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the database up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
