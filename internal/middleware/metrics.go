package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/internal/service"
)

// Metrics records latency and status per route template. Unmatched paths share
// a single label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}
