package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/logger"
)

type RequestLogger struct {
	log *logger.Logger
}

func NewRequestLogger(log *logger.Logger) *RequestLogger {
	return &RequestLogger{log: log.With("middleware", "RequestLogger")}
}

// Log emits one structured line per request. Bodies are never logged; report
// requests carry student identifiers and email addresses.
func (m *RequestLogger) Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			m.log.Error("Request failed", fields...)
			return
		}
		m.log.Info("Request handled", fields...)
	}
}
