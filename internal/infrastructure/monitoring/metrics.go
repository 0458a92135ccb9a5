package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeStopped = "stopped"
)

type EventMetrics struct {
	DispatchedTotal *prometheus.CounterVec
	PublishedTotal  *prometheus.CounterVec
}

type AuditMetrics struct {
	PrunedTotal prometheus.Counter
}

var (
	Events = EventMetrics{
		DispatchedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_events_dispatched_total",
				Help: "Total number of domain events dispatched on the in-process bus.",
			},
			[]string{"event", "outcome"},
		),
		PublishedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_events_published_total",
				Help: "Total number of events published to the message broker.",
			},
			[]string{"routing_key", "outcome"},
		),
	}

	Audit = AuditMetrics{
		PrunedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "backoffice_audit_entries_pruned_total",
				Help: "Total number of audit log entries removed by the retention job.",
			},
		),
	}
)

func RecordDispatch(eventName, outcome string) {
	Events.DispatchedTotal.WithLabelValues(eventName, outcome).Inc()
}

func RecordPublish(routingKey string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	Events.PublishedTotal.WithLabelValues(routingKey, outcome).Inc()
}

func RecordAuditPruned(n int64) {
	if n > 0 {
		Audit.PrunedTotal.Add(float64(n))
	}
}
