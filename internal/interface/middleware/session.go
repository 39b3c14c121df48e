package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imaadi07/User-Authentication/pkg/helpers"
	"github.com/imaadi07/User-Authentication/pkg/response"
)

const CtxUserIDKey = "userID"

// LoginPage is where unauthenticated browsers are sent.
const LoginPage = "/login.html"

// SessionGate reads the token cookie, verifies it, and injects the user ID
// into the context. Absent, expired and tampered tokens are handled
// identically: browsers get a redirect to the login page, JSON clients a
// 401 envelope.
func SessionGate(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.TokenCookieName)
		if err != nil || token == "" {
			deny(c)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			deny(c)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func deny(c *gin.Context) {
	if wantsJSON(c) {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, LoginPage)
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("Accept") == "application/json" {
		return true
	}
	return c.ContentType() == "application/json"
}
