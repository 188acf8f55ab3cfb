package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/usedcar-api/internal/service"
)

// unmatchedRoute labels requests that hit no registered route, keeping raw
// URLs (car IDs, probes) out of the path label.
const unmatchedRoute = "unmatched"

// Metrics records latency and status per route template. Paths listed in skip
// (for example the scrape endpoint itself) are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	ignored := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		ignored[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := ignored[route]; ok {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
