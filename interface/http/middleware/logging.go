package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slackhook/pkg/logger"
)

// Logging writes one record per request. Server errors log at error level and
// client errors at warn, so a failed relay stands out from routine traffic.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		attrs := logger.HTTPFields(
			logger.GetRequestID(c.Request.Context()),
			method,
			path,
			c.ClientIP(),
			status,
			time.Since(start).Milliseconds(),
			int(c.Request.ContentLength),
			c.Writer.Size(),
		)

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request failed", attrs)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request rejected", attrs)
		default:
			log.Info("HTTP request completed", attrs)
		}
	}
}
