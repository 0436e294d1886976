package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zdabe_http_requests_total",
			Help: "Total number of HTTP requests handled, by path, method and status.",
		},
		[]string{"path", "method", "status"},
	)

	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zdabe_upstream_requests_total",
			Help: "Total number of outbound upstream requests, by service and outcome.",
		},
		[]string{"service", "outcome"},
	)

	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zdabe_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
	)
)

// MustRegisterMetrics 注册所有指标, 重复注册时 panic
func MustRegisterMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		upstreamRequestsTotal,
		rateLimitedTotal,
	)
}

// HTTPRequest 记录一次入站请求
func HTTPRequest(path, method string, status int) {
	httpRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// UpstreamRequest 记录一次出站上游调用, outcome 取 ok 或 error
func UpstreamRequest(service, outcome string) {
	upstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
}

// RateLimited 记录一次被限流拒绝的请求
func RateLimited() {
	rateLimitedTotal.Inc()
}
