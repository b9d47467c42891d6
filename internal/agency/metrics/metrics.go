package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
// Tracks writes per entity, rule rejections and write latency.
type Metrics struct {
	Mutations            *prometheus.CounterVec
	ConstraintViolations *prometheus.CounterVec
	WriteDuration        *prometheus.HistogramVec
}

// New creates the registry metrics registered with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "distributors_mutations_total",
			Help: "Successful writes by entity and action",
		}, []string{"entity", "action"}),
		ConstraintViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "distributors_constraint_violations_total",
			Help: "Writes rejected by a business rule, by rule kind",
		}, []string{"kind"}),
		WriteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "distributors_write_duration_seconds",
			Help:    "Duration of validate-then-write transactions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"entity"}),
	}
}

// IncrementMutation records a successful write.
func (m *Metrics) IncrementMutation(entity, action string) {
	m.Mutations.WithLabelValues(entity, action).Inc()
}

// IncrementViolation records a write rejected by the constraint engine.
func (m *Metrics) IncrementViolation(kind string) {
	m.ConstraintViolations.WithLabelValues(kind).Inc()
}

// ObserveWrite records the duration of a write transaction.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveWrite(entity string, start time.Time) {
	m.WriteDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
}
