package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics. Module-specific
// counters live in the module's own metrics package.
type Metrics struct {
	CustomersCreated    prometheus.Counter
	OrdersCreated       prometheus.Counter
	QRPayloadsGenerated prometheus.Counter
	QRGenerationsShared prometheus.Counter
	OrderStatusChanged  *prometheus.CounterVec
}

// New creates and registers all process-wide metrics.
func New() *Metrics {
	return &Metrics{
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_customers_created_total",
			Help: "Total number of customers created",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_orders_created_total",
			Help: "Total number of orders created",
		}),
		QRPayloadsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_qr_payloads_generated_total",
			Help: "Total number of QR payload assets generated",
		}),
		QRGenerationsShared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanpos_qr_generations_shared_total",
			Help: "Total number of QR generation requests coalesced onto an in-flight generation",
		}),
		OrderStatusChanged: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanpos_order_status_changes_total",
			Help: "Total number of order status transitions",
		}, []string{"to"}),
	}
}

func (m *Metrics) IncrementCustomersCreated() { m.CustomersCreated.Inc() }
func (m *Metrics) IncrementOrdersCreated()    { m.OrdersCreated.Inc() }
func (m *Metrics) IncrementQRGenerated()      { m.QRPayloadsGenerated.Inc() }
func (m *Metrics) IncrementQRShared()         { m.QRGenerationsShared.Inc() }

func (m *Metrics) IncrementStatusChange(to string) {
	m.OrderStatusChanged.WithLabelValues(to).Inc()
}
