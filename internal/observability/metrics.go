package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the gateway.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec // labels: tool, outcome={success,empty,error,invalid_args}
	NWSRequests     *prometheus.CounterVec // labels: endpoint={points,forecast,alerts}, outcome
	NWSDuration     *prometheus.HistogramVec
	ProgressUpdates prometheus.Counter
}

// NewMetrics creates and registers all gateway metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		NWSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "nws_requests_total",
			Help:      "Outbound NWS API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		NWSDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "nws_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		ProgressUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "progress_updates_total",
			Help:      "Progress notifications delivered to MCP clients.",
		}),
	}

	prometheus.MustRegister(
		m.ToolInvocations,
		m.NWSRequests,
		m.NWSDuration,
		m.ProgressUpdates,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "tool_invocations_total"}, []string{"tool", "outcome"}),
		NWSRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "nws_requests_total"}, []string{"endpoint", "outcome"}),
		NWSDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "nws_request_duration_seconds"}, []string{"endpoint"}),
		ProgressUpdates: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "progress_updates_total"}),
	}
}
