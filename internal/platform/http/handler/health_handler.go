// Package handler provides HTTP handlers for platform level endpoints.
package handler

import "github.com/gin-gonic/gin"

// Health serves the /healthz endpoint used by service health checks.
// Responses are never cached.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
