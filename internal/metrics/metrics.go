package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry       *prometheus.Registry
	ShareAttempts  *prometheus.CounterVec
	UnfurlRequests *prometheus.CounterVec
	PostsWritten   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		ShareAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maxua_share_attempts_total",
			Help: "External share attempts by channel and result",
		}, []string{"channel", "result"}),
		UnfurlRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maxua_unfurl_requests_total",
			Help: "Link metadata fetches by result",
		}, []string{"result"}),
		PostsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maxua_posts_written_total",
			Help: "Post storage transitions by kind",
		}, []string{"transition"}),
	}
	reg.MustRegister(m.ShareAttempts, m.UnfurlRequests, m.PostsWritten)
	return m
}

// Handler отдаёт /metrics для собственного реестра.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Методы ниже безопасны для nil: в тестах метрики обычно не нужны.

func (m *Metrics) Share(channel string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.ShareAttempts.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) Unfurl(result string) {
	if m == nil {
		return
	}
	m.UnfurlRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) Transition(kind string) {
	if m == nil {
		return
	}
	m.PostsWritten.WithLabelValues(kind).Inc()
}
