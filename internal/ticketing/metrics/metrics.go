package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ScansAccepted      prometheus.Counter
	ScansIgnored       prometheus.Counter
	ScansRejected      *prometheus.CounterVec
	TagBatchesPrinted  prometheus.Counter
	WorkflowsCompleted prometheus.Counter
	WorkflowsCancelled prometheus.Counter
	ActiveWorkflows    prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		ScansAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_scans_accepted_total",
			Help: "Total number of accepted tag scans",
		}),
		ScansIgnored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_scans_ignored_total",
			Help: "Total number of ignored tag scans (inactive session or duplicate suppression)",
		}),
		ScansRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_scans_rejected_total",
			Help: "Total number of rejected tag scans by reason",
		}, []string{"reason"}),
		TagBatchesPrinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_tag_batches_printed_total",
			Help: "Total number of tag batches sent to the printer",
		}),
		WorkflowsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_workflows_completed_total",
			Help: "Total number of ticketing workflows completed",
		}),
		WorkflowsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_ticketing_workflows_cancelled_total",
			Help: "Total number of ticketing workflows cancelled",
		}),
		ActiveWorkflows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cleanpos_ticketing_active_workflows",
			Help: "Current number of live ticketing workflows",
		}),
	}
}

func (m *Metrics) IncrementScansAccepted() { m.ScansAccepted.Inc() }
func (m *Metrics) IncrementScansIgnored()  { m.ScansIgnored.Inc() }

func (m *Metrics) IncrementScansRejected(reason string) {
	m.ScansRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementTagBatchesPrinted()  { m.TagBatchesPrinted.Inc() }
func (m *Metrics) IncrementWorkflowsCompleted() { m.WorkflowsCompleted.Inc() }
func (m *Metrics) IncrementWorkflowsCancelled() { m.WorkflowsCancelled.Inc() }
func (m *Metrics) SetActiveWorkflows(n int)     { m.ActiveWorkflows.Set(float64(n)) }
