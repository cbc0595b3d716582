package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "zoodb"

// metrics holds the Prometheus collectors of a Server.
type metrics struct {
	httpRequests    *prometheus.CounterVec
	navigations     *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	decodeErrors    prometheus.Counter
	sessionMessages *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	wsErrors        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code",
		}, []string{"route", "code"}),

		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "navigations_total",
			Help:      "Router path changes by cause (push, replace, popstate)",
		}, []string{"cause"}),

		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "route_resolutions_total",
			Help:      "View route resolutions by route name; unmatched paths count as none",
		}, []string{"route"}),

		decodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "route_decode_errors_total",
			Help:      "Paths whose route parameters had invalid percent-encoding",
		}),

		sessionMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_messages_total",
			Help:      "Messages received from navigation sessions by type",
		}, []string{"type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Number of connected navigation sessions",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "websocket_errors_total",
			Help:      "WebSocket errors by type",
		}, []string{"type"}),
	}
}

func (m *metrics) recordResolution(route string, found bool) {
	if !found {
		route = "none"
	}
	m.resolutions.WithLabelValues(route).Inc()
}
