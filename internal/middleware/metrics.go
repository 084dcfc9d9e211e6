package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/formify/core/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight gauge per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveRequest(
			strings.ToUpper(c.Request.Method),
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
