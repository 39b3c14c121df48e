package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imaadi07/User-Authentication/internal/container"
	handlers "github.com/imaadi07/User-Authentication/internal/interface/http"
	"github.com/imaadi07/User-Authentication/internal/interface/middleware"
)

// AuthModule wires the public credential routes.
// POST /signup, POST /login, POST /logout

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
}
