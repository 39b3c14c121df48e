package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imaadi07/User-Authentication/internal/container"
	handlers "github.com/imaadi07/User-Authentication/internal/interface/http"
	"github.com/imaadi07/User-Authentication/internal/interface/middleware"
	"github.com/imaadi07/User-Authentication/pkg/helpers"
)

// DashboardModule wires the routes behind the session gate.
// GET /dashboard, GET /api/me

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Tokens  *helpers.TokenManager
}

func NewDashboardModule(h *handlers.DashboardHandler, tokens *helpers.TokenManager) *DashboardModule {
	return &DashboardModule{Handler: h, Tokens: tokens}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.SessionGate(m.Tokens))
	// softer per-user limit on protected routes
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/dashboard", m.Handler.Dashboard)
		auth.GET("/api/me", m.Handler.Me)
	}
}
