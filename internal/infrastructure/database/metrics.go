package database

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the store's Prometheus collectors
type Metrics struct {
	snapshotWrites   *prometheus.CounterVec
	snapshotDuration prometheus.Histogram
	snapshotLoads    *prometheus.CounterVec
	records          *prometheus.GaugeVec
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		snapshotWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_snapshot_writes_total",
				Help: "Total number of snapshot writes by result",
			},
			[]string{"result"},
		),
		snapshotDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "store_snapshot_write_duration_seconds",
				Help:    "Time spent serializing and writing a snapshot",
				Buckets: prometheus.DefBuckets,
			},
		),
		snapshotLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_snapshot_loads_total",
				Help: "Snapshot loads at startup by result",
			},
			[]string{"result"},
		),
		records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "store_records",
				Help: "Number of records held in memory per collection",
			},
			[]string{"collection"},
		),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.snapshotWrites, m.snapshotDuration, m.snapshotLoads, m.records} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeWrite(seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.snapshotWrites.WithLabelValues(result).Inc()
	m.snapshotDuration.Observe(seconds)
}

func (m *Metrics) observeLoad(result string) {
	m.snapshotLoads.WithLabelValues(result).Inc()
}

func (m *Metrics) setCounts(counts map[string]int) {
	for name, n := range counts {
		m.records.WithLabelValues(name).Set(float64(n))
	}
}
