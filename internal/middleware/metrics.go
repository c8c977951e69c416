package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/service"
)

// Metrics observes every request's method, route and latency. The route
// template is used instead of the raw path so ids do not explode the label
// cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched requests (404s) share one label.
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
