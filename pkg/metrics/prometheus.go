package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdmissionDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diskgate_admission_decisions_total",
			Help: "Total number of admission decisions by result and reason",
		},
		[]string{"result", "reason"},
	)

	ProbeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diskgate_probe_failures_total",
			Help: "Total number of failed capacity probes during admission",
		},
	)

	CategoryMembers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "diskgate_category_members",
			Help: "Number of task references per category",
		},
		[]string{"category"},
	)

	CategoryAdmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diskgate_category_admissions_total",
			Help: "Admission decisions per task category",
		},
		[]string{"category", "result"},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diskgate_event_publish_failures_total",
			Help: "Total number of admission events that could not be published",
		},
	)
)

// ResultLabel maps a decision outcome to the "result" label value.
func ResultLabel(admitted bool) string {
	if admitted {
		return "admitted"
	}
	return "denied"
}
