package router

import (
	authapp "github.com/imaadi07/User-Authentication/internal/application"
	"github.com/imaadi07/User-Authentication/internal/container"
	pginfra "github.com/imaadi07/User-Authentication/internal/infrastructure/postgres"
	handlers "github.com/imaadi07/User-Authentication/internal/interface/http"
	"github.com/imaadi07/User-Authentication/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := authapp.NewService(repo, container.GetTokens(), container.GetLogger())

	authHandler := handlers.NewAuthHandler(
		service,
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure,
	)
	dashHandler := handlers.NewDashboardHandler(service, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewDashboardModule(dashHandler, container.GetTokens()))
	r.Add(modules.NewHealthModule())
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
