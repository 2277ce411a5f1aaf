package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
)

// requestLogging records method, path, status, and duration for every
// request.  5xx responses log at error level, 4xx at warn; the health and
// metrics endpoints are skipped to keep scrape noise out of the logs.
func requestLogging(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("duration", time.Since(start)),
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}
