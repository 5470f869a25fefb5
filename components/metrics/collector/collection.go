package collector

import (
	"github.com/iotaledger/hive.go/runtime/options"
)

// Collection groups the metrics of a subsystem. Its name is the namespace of the metrics.
type Collection struct {
	Name string

	metrics     []*Metric
	metricIndex map[string]int
}

// NewCollection creates a Collection and initializes the prometheus representation of its metrics.
func NewCollection(name string, opts ...options.Option[Collection]) *Collection {
	return options.Apply(&Collection{
		Name:        name,
		metricIndex: make(map[string]int),
	}, opts, func(c *Collection) {
		for _, metric := range c.metrics {
			metric.Namespace = c.Name
			metric.initPromMetric()
		}
	})
}

// Metric returns the metric with the given name or nil if the Collection does not contain it.
func (c *Collection) Metric(name string) *Metric {
	if index, exists := c.metricIndex[name]; exists {
		return c.metrics[index]
	}

	return nil
}

// Metrics returns the metrics in the order they were added.
func (c *Collection) Metrics() []*Metric {
	return c.metrics
}

// WithMetrics adds metrics to the Collection. A metric replaces an earlier one with the same name.
func WithMetrics(metrics ...*Metric) options.Option[Collection] {
	return func(c *Collection) {
		for _, metric := range metrics {
			if metric == nil {
				continue
			}

			if index, exists := c.metricIndex[metric.Name]; exists {
				c.metrics[index] = metric

				continue
			}

			c.metricIndex[metric.Name] = len(c.metrics)
			c.metrics = append(c.metrics, metric)
		}
	}
}
