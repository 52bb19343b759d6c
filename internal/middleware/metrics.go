package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records finished HTTP requests.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, latency time.Duration)
}

// MetricsMiddleware reports every request to observer, labelled by its route template.
func MetricsMiddleware(observer HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
