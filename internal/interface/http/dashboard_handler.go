package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authapp "github.com/imaadi07/User-Authentication/internal/application"
	"github.com/imaadi07/User-Authentication/internal/interface/middleware"
	"github.com/imaadi07/User-Authentication/pkg/response"
)

// DashboardHandler serves the protected routes behind the session gate.
type DashboardHandler struct {
	Svc    *authapp.Service
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *authapp.Service, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Dashboard GET /dashboard
// The user record is re-fetched by ID so the greeting reflects the store,
// not the token's embedded data.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, authapp.ErrUserNotFound) {
			// valid token for a user that no longer exists
			c.Redirect(http.StatusFound, middleware.LoginPage)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("dashboard lookup failed")
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}
	c.String(http.StatusOK, "Welcome, %s!", u.Username)
}

// Me GET /api/me
func (h *DashboardHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, authapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}, "profile", nil)
}
