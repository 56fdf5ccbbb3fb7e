package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/moneymask/internal/field"
)

const namespace = "moneymask"

// Metrics records edit outcomes, bound fields and batch throughput. It
// implements field.Observer and field.BindObserver, so it can be passed to
// field.WithObserver directly. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	edits         *prometheus.CounterVec
	bound         prometheus.Gauge
	batchValues   *prometheus.CounterVec
	batchDuration prometheus.Histogram
}

// New creates the instruments and registers them, together with the Go
// runtime and process collectors, on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		edits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "edits_total",
				Help:      "Field edits by outcome.",
			},
			[]string{"outcome"},
		),
		bound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fields_bound",
			Help:      "Number of fields currently bound to a listener.",
		}),
		batchValues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "batch",
				Name:      "values_total",
				Help:      "Values processed in batch mode by status.",
			},
			[]string{"status"},
		),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "run_seconds",
			Help:      "Duration of batch runs.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.edits, m.bound, m.batchValues, m.batchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveEdit implements field.Observer.
func (m *Metrics) ObserveEdit(e field.Event) {
	if m == nil {
		return
	}
	m.edits.WithLabelValues(e.Outcome.Kind.String()).Inc()
}

// FieldBound implements field.BindObserver.
func (m *Metrics) FieldBound() {
	if m == nil {
		return
	}
	m.bound.Inc()
}

// FieldUnbound implements field.BindObserver.
func (m *Metrics) FieldUnbound() {
	if m == nil {
		return
	}
	m.bound.Dec()
}

// ObserveBatchValue counts one batch value.
func (m *Metrics) ObserveBatchValue(status string) {
	if m == nil {
		return
	}
	m.batchValues.WithLabelValues(status).Inc()
}

// ObserveBatchDuration records the duration of a batch run.
func (m *Metrics) ObserveBatchDuration(d time.Duration) {
	if m == nil || d < 0 {
		return
	}
	m.batchDuration.Observe(d.Seconds())
}

// EditsCounter exposes the edit counter for testing and diagnostics.
func (m *Metrics) EditsCounter(outcome string) prometheus.Counter {
	return m.edits.WithLabelValues(outcome)
}

// BoundGauge exposes the bound fields gauge for testing and diagnostics.
func (m *Metrics) BoundGauge() prometheus.Gauge { return m.bound }

// BatchValuesCounter exposes the batch counter for testing and diagnostics.
func (m *Metrics) BatchValuesCounter(status string) prometheus.Counter {
	return m.batchValues.WithLabelValues(status)
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
