package server

import (
	"time"

	"fitstudio/internal/auth"
	"fitstudio/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware emits one structured line per request. The
// member_id field is present once auth middleware has run, so protected
// routes are attributable.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if memberID, ok := auth.GetMemberID(c); ok {
			fields = append(fields, "member_id", memberID)
		}

		logger.Info("HTTP request", fields...)
	}
}
