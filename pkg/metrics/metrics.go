/*
Package metrics Prometheus 指标
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics 论坛服务的指标集合
type Metrics struct {
	eventsDispatched *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New 创建并注册全部指标
// 测试中传入 prometheus.NewRegistry()，避免重复注册到默认注册表
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		eventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_domain_events_dispatched_total",
			Help: "Total number of domain events delivered to subscribers",
		}, []string{"event"}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forum_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: defaultBuckets,
		}, []string{"method", "route"}),

		gatherer: reg,
	}

	reg.MustRegister(
		m.eventsDispatched,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// EventDispatched 记录一次事件投递
func (m *Metrics) EventDispatched(eventName string) {
	m.eventsDispatched.WithLabelValues(eventName).Inc()
}

// ObserveHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler 暴露 /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
