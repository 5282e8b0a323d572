package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationDomains = "domains"
	operationSummary = "summary"
	operationChart   = "chart"
	operationDetail  = "detail"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors of the report store. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Fetches       *prometheus.CounterVec
	ChartRejected *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dmarc_atlas_fetch_total",
			Help: "Total number of backend fetches by operation and outcome",
		}, []string{"operation", "outcome"}),
		ChartRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dmarc_atlas_chart_rejected_total",
			Help: "Total number of chart payloads that could not be rendered",
		}, []string{"reason"}),
	}
}

func (m *Metrics) observeFetch(operation string, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.Fetches.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) observeChartRejected(reason string) {
	if m == nil {
		return
	}
	m.ChartRejected.WithLabelValues(reason).Inc()
}
