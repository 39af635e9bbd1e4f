package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of one monitor instance
type Metrics struct {
	registry *prometheus.Registry

	ReadBytes       prometheus.Gauge
	WrittenBytes    prometheus.Gauge
	AlertClass      prometheus.Gauge
	SamplesTotal    prometheus.Counter
	SampleErrors    *prometheus.CounterVec
	CounterResets   prometheus.Counter
	IntervalSeconds prometheus.Gauge
}

// NewMetrics creates a private registry and registers all metrics on it,
// so several instances can coexist in one process.
func NewMetrics(appName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	labels := prometheus.Labels{"app": appName}

	return &Metrics{
		registry: reg,

		ReadBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "iostat",
			Name:        "read_bytes",
			Help:        "Bytes read across physical devices during the last interval",
			ConstLabels: labels,
		}),
		WrittenBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "iostat",
			Name:        "written_bytes",
			Help:        "Bytes written across physical devices during the last interval",
			ConstLabels: labels,
		}),
		AlertClass: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "iostat",
			Name:        "alert_class",
			Help:        "Current alert tier (0=normal, 1=warning, 2=critical)",
			ConstLabels: labels,
		}),
		SamplesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "iostat",
			Name:        "samples_total",
			Help:        "Total number of successful samples",
			ConstLabels: labels,
		}),
		SampleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "iostat",
			Name:        "sample_errors_total",
			Help:        "Total number of failed samples by error kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		CounterResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "iostat",
			Name:        "counter_resets_total",
			Help:        "Number of times the kernel counters went backwards between samples",
			ConstLabels: labels,
		}),
		IntervalSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "iostat",
			Name:        "interval_seconds",
			Help:        "Configured sampling interval",
			ConstLabels: labels,
		}),
	}
}

// RecordSample updates the gauges from a successful delta
func (m *Metrics) RecordSample(readBytes, writtenBytes uint64, class int) {
	m.SamplesTotal.Inc()
	m.ReadBytes.Set(float64(readBytes))
	m.WrittenBytes.Set(float64(writtenBytes))
	m.AlertClass.Set(float64(class))
}

// RecordBaseline counts a sample that produced no delta
func (m *Metrics) RecordBaseline() {
	m.SamplesTotal.Inc()
}

// RecordError counts a failed sample
func (m *Metrics) RecordError(kind string) {
	m.SampleErrors.WithLabelValues(kind).Inc()
}

// RecordCounterReset counts a sample whose counters went backwards
func (m *Metrics) RecordCounterReset() {
	m.SamplesTotal.Inc()
	m.CounterResets.Inc()
}

// Registry exposes the underlying registry for tests and custom handlers
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
