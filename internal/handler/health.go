package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root is the liveness endpoint at /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Acquisitions API is running",
	})
}

// Health reports process health and uptime.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}

// API is the informational endpoint at /api.
func (h *HealthHandler) API(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Acquisitions API",
	})
}

// Uptime is used by handlers that report uptime alongside other data.
func (h *HealthHandler) Uptime() time.Duration {
	return time.Since(h.startedAt)
}
