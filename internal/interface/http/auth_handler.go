package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authapp "github.com/imaadi07/User-Authentication/internal/application"
	"github.com/imaadi07/User-Authentication/pkg/helpers"
	"github.com/imaadi07/User-Authentication/pkg/response"
	"github.com/imaadi07/User-Authentication/pkg/validation"
)

// DashboardPage is where freshly authenticated browsers are sent.
const DashboardPage = "/dashboard.html"

// AuthHandler serves the browser-facing credential flow. Bodies are plain
// text and failures stay terse: the same message for unknown username and
// wrong password, and no store detail past the 500.
type AuthHandler struct {
	Svc     *authapp.Service
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *authapp.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// credentialsRequest binds both the HTML form posts and JSON bodies.
type credentialsRequest struct {
	Username string `form:"username" json:"username" binding:"required,uname"`
	Password string `form:"password" json:"password" binding:"required"`
}

func isJSON(c *gin.Context) bool {
	return c.ContentType() == "application/json"
}

// Signup POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		// browsers keep the original terse body; JSON clients get field details
		if isJSON(c) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		c.String(http.StatusBadRequest, "All fields are required")
		return
	}

	_, tok, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authapp.ErrUserExists) {
			c.String(http.StatusBadRequest, "User already exists")
			return
		}
		h.Logger.WithError(err).WithField("username", req.Username).Error("signup failed")
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	h.Cookies.SetToken(c, tok.Token, tok.ExpiresAt)
	c.Redirect(http.StatusFound, DashboardPage)
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		if isJSON(c) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		// a missing field reads the same as a bad credential to browsers
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}

	_, tok, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authapp.ErrInvalidCredentials) {
			c.String(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Logger.WithError(err).WithField("username", req.Username).Error("login failed")
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	h.Cookies.SetToken(c, tok.Token, tok.ExpiresAt)
	c.Redirect(http.StatusFound, DashboardPage)
}

// Logout POST /logout
// Clears the cookie only; the token itself stays valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/login.html")
}
