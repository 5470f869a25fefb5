package collector

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/runtime/options"
)

type MetricType uint8

const (
	// Gauge is a metric that represents a single numerical value that can arbitrarily go up and down.
	// During metric Update the collected value is set, thus previous value is overwritten.
	Gauge MetricType = iota
	// Counter is a cumulative metric that represents a single numerical value that only ever goes up.
	// During metric Update the collected value is added to its current value.
	Counter
)

// UpdateFunc sets or adds a value for the given label values of a Metric.
type UpdateFunc func(metricValue float64, labelValues ...string)

// Metric is a single metric that will be registered to prometheus registry.
// Its value is either read by the WithCollectFunc callback whenever prometheus scrapes the data,
// or pushed through the Collector by the hooks installed in WithInitFunc.
type Metric struct {
	Name      string
	Type      MetricType
	Namespace string

	help         string
	labels       []string
	collectFunc  func(update UpdateFunc)
	initFunc     func()
	resetEnabled bool

	promMetric prometheus.Collector
	once       sync.Once
}

// NewMetric creates a new metric with given name and options.
func NewMetric(name string, opts ...options.Option[Metric]) *Metric {
	return options.Apply(&Metric{
		Name: name,
	}, opts)
}

func (m *Metric) initPromMetric() {
	m.once.Do(func() {
		switch m.Type {
		case Gauge:
			gaugeOpts := prometheus.GaugeOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
			if len(m.labels) > 0 {
				m.promMetric = prometheus.NewGaugeVec(gaugeOpts, m.labels)

				return
			}
			m.promMetric = prometheus.NewGauge(gaugeOpts)
		case Counter:
			counterOpts := prometheus.CounterOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
			if len(m.labels) > 0 {
				m.promMetric = prometheus.NewCounterVec(counterOpts, m.labels)

				return
			}
			m.promMetric = prometheus.NewCounter(counterOpts)
		}
	})
}

func (m *Metric) collect() {
	if m.resetEnabled {
		m.reset()
	}

	if m.collectFunc != nil {
		m.collectFunc(m.update)
	}
}

func (m *Metric) update(metricValue float64, labelValues ...string) {
	if len(labelValues) != len(m.labels) {
		return
	}

	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(metricValue)
	case *prometheus.GaugeVec:
		metric.WithLabelValues(labelValues...).Set(metricValue)
	case prometheus.Counter:
		metric.Add(metricValue)
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Add(metricValue)
	}
}

func (m *Metric) reset() {
	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(0)
	case *prometheus.GaugeVec:
		metric.Reset()
	case *prometheus.CounterVec:
		metric.Reset()
	}
}

// WithType sets the metric type: Gauge or Counter.
func WithType(t MetricType) options.Option[Metric] {
	return func(m *Metric) {
		m.Type = t
	}
}

// WithHelp sets the help text for the metric.
func WithHelp(help string) options.Option[Metric] {
	return func(m *Metric) {
		m.help = help
	}
}

// WithLabels allows to define labels for the metric, they will need to be passed in the same order to the Update.
func WithLabels(labels ...string) options.Option[Metric] {
	return func(m *Metric) {
		m.labels = labels
	}
}

// WithResetBeforeCollecting if enabled there will be a reset call on metric before each collectFunction call.
func WithResetBeforeCollecting(resetEnabled bool) options.Option[Metric] {
	return func(m *Metric) {
		m.resetEnabled = resetEnabled
	}
}

// WithCollectFunc allows to define a function that will be called each time when prometheus will scrape the data.
// The function reports one value per set of label values through the given UpdateFunc.
func WithCollectFunc(collectFunc func(update UpdateFunc)) options.Option[Metric] {
	return func(m *Metric) {
		m.collectFunc = collectFunc
	}
}

// WithInitFunc allows to define a function that will be called once when the metric is registered.
// It should be used to hook the metric to events, which then call one of the update methods of the Collector.
func WithInitFunc(initFunc func()) options.Option[Metric] {
	return func(m *Metric) {
		m.initFunc = initFunc
	}
}
