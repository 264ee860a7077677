package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns a simple liveness payload. It answers 200 regardless of the
// store connection state; /api/status reports that separately.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Status reports the server state, the cached MongoDB connection state and
// the configured environment name.
func Status(conn StoreConn, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"server":      "running",
			"mongodb":     conn.State(),
			"environment": environment,
		})
	}
}
