package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/logging"
)

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// APIKeyAuth rejects requests whose X-Api-Key header does not match key.
// An empty key disables the check.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != "" && c.GetHeader("X-Api-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "missing or invalid api key"})
			return
		}
		c.Next()
	}
}
