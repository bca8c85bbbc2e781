package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for operation counters
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// RepositoryMetrics holds all Prometheus metrics for the repository layer
type RepositoryMetrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	lockWait   *prometheus.HistogramVec
	rows       *prometheus.HistogramVec
}

// NewRepositoryMetrics creates the repository metrics and registers them on reg.
// A nil reg leaves the metrics unregistered.
func NewRepositoryMetrics(reg prometheus.Registerer) *RepositoryMetrics {
	factory := promauto.With(reg)
	return &RepositoryMetrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rli_repository_operations_total",
				Help: "Total number of repository operations by entity, operation and result",
			},
			[]string{"entity", "op", "result"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rli_repository_operation_latency_ms",
				Help:    "Latency of repository operations in milliseconds, lock wait included",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
			},
			[]string{"entity", "op"},
		),
		lockWait: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rli_repository_lock_wait_ms",
				Help:    "Time spent waiting for the per-entity lock in milliseconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 50, 100},
			},
			[]string{"entity"},
		),
		rows: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rli_repository_rows_returned",
				Help:    "Rows returned by listing and derived queries",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"entity", "op"},
		),
	}
}

// ObserveOperation records the outcome and latency of one operation
func (m *RepositoryMetrics) ObserveOperation(entity, op, result string, started time.Time) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(entity, op, result).Inc()
	m.latency.WithLabelValues(entity, op).Observe(float64(time.Since(started).Microseconds()) / 1000.0)
}

// ObserveLockWait records how long an operation waited for the entity lock
func (m *RepositoryMetrics) ObserveLockWait(entity string, wait time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.WithLabelValues(entity).Observe(float64(wait.Microseconds()) / 1000.0)
}

// ObserveRows records the size of a listing result
func (m *RepositoryMetrics) ObserveRows(entity, op string, n int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(entity, op).Observe(float64(n))
}
