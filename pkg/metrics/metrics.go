package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal 所有 HTTP 請求總數
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration HTTP 請求延遲分佈（毫秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"method", "route", "status_code"},
	)

	// ActiveRequests 當前正在處理的請求數
	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of active HTTP requests",
		},
	)

	// HTTPErrorsTotal 4xx/5xx 錯誤總數
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP errors (4xx and 5xx)",
		},
		[]string{"method", "route", "status_code"},
	)

	// OrdersTotal 成功建立的訂單總數，只在 commit 之後遞增
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Total number of orders created",
		},
		[]string{"event_id", "payment_method"},
	)

	// ExpiredOrdersTotal 過期清理器取消的訂單總數
	ExpiredOrdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expired_orders_total",
			Help: "Total number of pending orders cancelled by the expiry sweep",
		},
	)
)
