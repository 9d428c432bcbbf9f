package middleware

import (
	"strconv"

	"github.com/askbook/askbook-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics counts every request by method, matched route template and status.
// Requests that match no route are labelled "unmatched" to keep label cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
