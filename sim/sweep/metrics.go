package sweep

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/warehouse-sim/warehouse-sim/sim/results"
)

// Metrics exposes sweep progress as Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsCompleted prometheus.Counter
	RunsFailed    prometheus.Counter
	InFlight      prometheus.Gauge
	RunSeconds    prometheus.Histogram
	Finished      *prometheus.CounterVec
	Rejected      *prometheus.CounterVec
}

// NewMetrics creates the sweep collectors and registers them with reg when reg
// is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sweep_runs_completed_total",
			Help: "Simulation runs completed",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sweep_runs_failed_total",
			Help: "Simulation runs that returned an error or panicked",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sweep_runs_in_flight",
			Help: "Simulation runs currently executing",
		}),
		RunSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "warehouse_sweep_run_seconds",
			Help:    "Wall-clock time of one simulation run",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warehouse_sweep_shipments_finished_total",
			Help: "Shipments processed across all runs",
		}, []string{"lane"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warehouse_sweep_shipments_rejected_total",
			Help: "Shipments rejected at a full queue across all runs",
		}, []string{"lane"}),
	}
	if reg != nil {
		reg.MustRegister(m.RunsCompleted, m.RunsFailed, m.InFlight, m.RunSeconds, m.Finished, m.Rejected)
	}
	return m
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

func (m *Metrics) failed() {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.RunsFailed.Inc()
}

func (m *Metrics) completed(row results.Row, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.RunsCompleted.Inc()
	m.RunSeconds.Observe(elapsed.Seconds())
	m.Finished.WithLabelValues("grocery").Add(float64(row.FinishedGrocery))
	m.Finished.WithLabelValues("frozen").Add(float64(row.FinishedFrozen))
	m.Rejected.WithLabelValues("grocery").Add(float64(row.RejectsGrocery))
	m.Rejected.WithLabelValues("frozen").Add(float64(row.RejectsFrozen))
}
