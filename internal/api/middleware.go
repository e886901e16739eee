package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avdeyev/shareit-backend/internal/pkg/metrics"
)

// RequestLogger logs one line per request with method, route, status and
// latency, and feeds the same observation into the Prometheus collectors.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched routes would explode the label cardinality.
			route = "unmatched"
		}

		elapsed := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.Request.Method, route, status, elapsed)

		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		}
		evt.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}
