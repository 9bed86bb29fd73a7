package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
)

// RequestLogger logs one line per request with method, path, status and
// latency. Bodies are never logged; profile intake payloads carry health
// details and must stay out of the logs.
func RequestLogger(baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("Middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			log.Error("request failed", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
