package middleware

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

var httpRequestsInFlight int64

func init() {
	metrics.NewGauge(`http_requests_in_flight`, func() float64 {
		return float64(atomic.LoadInt64(&httpRequestsInFlight))
	})
}

// Metrics records request counts and latency labelled by route template, so
// /api/v1/deliveries/:id stays a single series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		atomic.AddInt64(&httpRequestsInFlight, 1)
		defer atomic.AddInt64(&httpRequestsInFlight, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		handler := labelValue(route)
		method := labelValue(c.Request.Method)
		status := strconv.Itoa(c.Writer.Status())

		metrics.GetOrCreateCounter(`http_requests_total{handler="` + handler + `",method="` + method + `",status="` + status + `"}`).Inc()
		metrics.GetOrCreateHistogram(`http_request_duration_seconds{handler="` + handler + `",method="` + method + `"}`).
			Update(time.Since(start).Seconds())
	}
}

func labelValue(s string) string {
	return strings.ReplaceAll(s, `"`, `_`)
}
