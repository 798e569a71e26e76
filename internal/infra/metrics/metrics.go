package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline and broadcast counters. HTTP request metrics live in the
// middleware package; everything below is recorded by the domain layers.
var (
	callsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calls_processed_total",
			Help: "Total number of call analyses finished by the worker",
		},
		[]string{"status"},
	)

	emailsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_processed_total",
			Help: "Total number of emails run through the enrichment pipeline",
		},
	)

	agentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_errors_total",
			Help: "Total number of AI agent call failures",
		},
		[]string{"endpoint"},
	)

	eventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_broadcast_total",
			Help: "Total number of events pushed to dashboard clients",
		},
		[]string{"event"},
	)

	sseClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connected_clients",
			Help: "Number of dashboard clients on the event stream",
		},
	)
)

func RecordCallProcessed(status string) {
	callsProcessed.WithLabelValues(status).Inc()
}

func RecordEmailProcessed() {
	emailsProcessed.Inc()
}

func RecordAgentError(endpoint string) {
	agentErrors.WithLabelValues(endpoint).Inc()
}

func RecordEventBroadcast(event string) {
	eventsBroadcast.WithLabelValues(event).Inc()
}

func SSEClientConnected() {
	sseClients.Inc()
}

func SSEClientDisconnected() {
	sseClients.Dec()
}
