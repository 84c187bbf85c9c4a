package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness of the recipe service
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ServiceInfo lists the entry points of the recipe service
func ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Recipe LLM Backend",
		"health":  "/health",
		"metrics": "/metrics",
		"recipes": gin.H{
			"POST": "/recipes",
			"GET":  "/recipes/html",
		},
	})
}
