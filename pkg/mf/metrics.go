package mf

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the subset of a metrics manager the core needs: registering
// the handful of families this service emits and recording against them.
// Modelled on the teacher's container.Metrics() surface
// (NewCounter/NewGauge/NewHistogram/SetGauge), trimmed to what a single
// HTTP+SQL service exercises — no exporter abstraction, since Prometheus is
// the only sink this service ships with.
type Metrics interface {
	NewCounter(name, help string, labels ...string)
	NewGauge(name, help string)
	NewHistogram(name, help string, buckets ...float64)
	SetGauge(name string, value float64)
	IncCounter(name string, labels ...string)
	ObserveHistogram(name string, value float64, labels ...string)
}

type promMetrics struct {
	registry    *prometheus.Registry
	counters    map[string]*prometheus.CounterVec
	gauges      map[string]prometheus.Gauge
	histograms  map[string]*prometheus.HistogramVec
}

// NewPrometheusMetrics creates a Metrics backed by a fresh Prometheus registry.
func NewPrometheusMetrics() Metrics {
	return &promMetrics{
		registry:   prometheus.NewRegistry(),
		counters:   map[string]*prometheus.CounterVec{},
		gauges:     map[string]prometheus.Gauge{},
		histograms: map[string]*prometheus.HistogramVec{},
	}
}

func (m *promMetrics) NewCounter(name, help string, labels ...string) {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	m.registry.MustRegister(c)
	m.counters[name] = c
}

func (m *promMetrics) NewGauge(name, help string) {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	m.registry.MustRegister(g)
	m.gauges[name] = g
}

func (m *promMetrics) NewHistogram(name, help string, buckets ...float64) {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, []string{"path", "method"})
	m.registry.MustRegister(h)
	m.histograms[name] = h
}

func (m *promMetrics) SetGauge(name string, value float64) {
	if g, ok := m.gauges[name]; ok {
		g.Set(value)
	}
}

func (m *promMetrics) IncCounter(name string, labels ...string) {
	if c, ok := m.counters[name]; ok {
		c.WithLabelValues(labels...).Inc()
	}
}

func (m *promMetrics) ObserveHistogram(name string, value float64, labels ...string) {
	if h, ok := m.histograms[name]; ok {
		h.WithLabelValues(labels...).Observe(value)
	}
}

// Registry exposes the underlying Prometheus registry so /metrics can serve it.
func (m *promMetrics) Registry() *prometheus.Registry { return m.registry }
