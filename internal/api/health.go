package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now().UTC()

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "eventrelay",
		"uptime":    time.Since(startedAt).String(),
		"timestamp": time.Now().UTC(),
	})
}
