package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/fitlog/fitlog/backend/go-services/pkg/metrics"
)

// RequestMetrics records request count and latency per matched route.
// Requests that match no route are grouped under "unmatched" to keep label
// cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
