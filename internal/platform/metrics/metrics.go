package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	TaskTransitions   *prometheus.CounterVec
	NotificationsSent prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TaskTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rtrw_task_transitions_total",
			Help: "Total task transitions processed, by kind, decision and result",
		}, []string{"kind", "decision", "result"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rtrw_notifications_dispatched_total",
			Help: "Total notifications dispatched to the delivery channel",
		}),
	}
}

// RecordTransition counts one transition attempt.
func (m *Metrics) RecordTransition(kind, decision string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.TaskTransitions.WithLabelValues(kind, decision, result).Inc()
}

// RecordNotification counts one dispatched notification.
func (m *Metrics) RecordNotification() {
	m.NotificationsSent.Inc()
}
