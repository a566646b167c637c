package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	accounts := app.Group("/accounts")
	accounts.Post("/register", cfg.Accounts.Register)
	accounts.Get("/activate", cfg.Accounts.Activate)

	me := accounts.Group("/me", cfg.AuthMiddleware.Handle)
	me.Get("", cfg.Accounts.Me)
	me.Put("", cfg.Accounts.UpdateProfile)
	me.Post("/password", cfg.Accounts.ChangePassword)

	admin := app.Group("/admin/accounts", cfg.AuthMiddleware.Handle, auth.RequireAuthority(domain.AuthorityAdmin))
	admin.Put("/:login", cfg.Admin.UpdateAccount)
	admin.Delete("/:id", cfg.Admin.SoftDelete)
}
