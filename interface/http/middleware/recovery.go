package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slackhook/pkg/logger"
)

// Recovery turns a panic into a 500. The request id is echoed in the body so a
// caller can quote it when reporting the failure.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := logger.GetRequestID(c.Request.Context())
				route := c.FullPath()
				if route == "" {
					route = "unknown"
				}

				log.Error("Panic recovered",
					slog.Any("error", err),
					slog.String("stack", string(debug.Stack())),
					slog.String("request_id", requestID),
					slog.String("route", route),
					slog.String("method", c.Request.Method),
				)
				metrics.GetOrCreateCounter(`http_panics_total{handler="` + labelValue(route) + `"}`).Inc()

				body := gin.H{"error": "internal server error"}
				if requestID != "" {
					body["request_id"] = requestID
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}
