package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"equitylens/internal/metrics"
)

// HTTPMetrics records request counts and latency per route template.
// Unmatched routes are grouped under "unmatched" to bound label cardinality.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
