package middleware

import (
	"strconv"
	"time"

	"go-gin-ticket-store/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// TrackMetrics 記錄每個請求的計數、延遲與進行中數量
func TrackMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.ActiveRequests.Inc()

		c.Next()

		metrics.ActiveRequests.Dec()

		// 用註冊的路由模板當 label，避免 label 爆炸
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start).Milliseconds())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(elapsed)

		if c.Writer.Status() >= 400 {
			metrics.HTTPErrorsTotal.WithLabelValues(method, route, status).Inc()
		}
	}
}
