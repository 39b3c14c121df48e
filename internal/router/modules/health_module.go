package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imaadi07/User-Authentication/pkg/response"
)

// HealthModule registers the liveness endpoint. It is always wired,
// independent of the debug metrics toggle.
type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	})
}
