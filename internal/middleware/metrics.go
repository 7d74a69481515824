package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"promoservice/internal/pkg/metrics"
)

// Metrics records request count, latency and in-flight requests, labelled
// with the route template so ids do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPInflightRequests.Inc()
		defer metrics.HTTPInflightRequests.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "UNMATCHED"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
