package middleware

import (
	"log/slog"
	"time"

	"meeting_tracker/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger emits one structured log line per request
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		}
		log := logging.WithContext(c.Request.Context(), logger)
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			log.Error("request completed", attrs...)
			return
		}
		log.Info("request completed", attrs...)
	}
}
