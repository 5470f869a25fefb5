package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// Collector is responsible for creation and collection of metrics for the prometheus.
type Collector struct {
	Registry *prometheus.Registry

	collections      map[string]*Collection
	collectionsMutex syncutils.RWMutex
}

// New creates an instance of Collector and creates a new prometheus registry for the metrics collection.
func New() *Collector {
	return &Collector{
		Registry:    prometheus.NewRegistry(),
		collections: make(map[string]*Collection),
	}
}

// RegisterCollection registers the metrics of the collection and runs their init functions. A collection can only
// be registered once.
func (c *Collector) RegisterCollection(collection *Collection) error {
	if err := c.addCollection(collection); err != nil {
		return err
	}

	for _, metric := range collection.Metrics() {
		if metric.initFunc != nil {
			metric.initFunc()
		}
	}

	return nil
}

func (c *Collector) addCollection(collection *Collection) error {
	c.collectionsMutex.Lock()
	defer c.collectionsMutex.Unlock()

	if _, exists := c.collections[collection.Name]; exists {
		return ierrors.Errorf("collection %s is registered already", collection.Name)
	}

	for _, metric := range collection.Metrics() {
		if err := c.Registry.Register(metric.promMetric); err != nil {
			return ierrors.Wrapf(err, "failed to register metric %s_%s", collection.Name, metric.Name)
		}
	}
	c.collections[collection.Name] = collection

	return nil
}

// Collect collects all metrics from the registered collections.
func (c *Collector) Collect() {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	for _, collection := range c.collections {
		for _, metric := range collection.Metrics() {
			metric.collect()
		}
	}
}

// Update updates the value of the existing metric defined by the subsystem and metricName.
// Gauges are set to the value, counters are increased by it.
// Note that the label values must be passed in the same order as they were defined in the metric.
func (c *Collector) Update(subsystem string, metricName string, metricValue float64, labelValues ...string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.update(metricValue, labelValues...)
	}
}

// Increment increments the value of the existing metric defined by the subsystem and metricName.
func (c *Collector) Increment(subsystem string, metricName string, labelValues ...string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.update(1, labelValues...)
	}
}

// ResetMetric resets the metric with the given name.
func (c *Collector) ResetMetric(subsystem string, metricName string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.reset()
	}
}

func (c *Collector) getMetric(subsystem string, metricName string) *Metric {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	if collection, exists := c.collections[subsystem]; exists {
		return collection.Metric(metricName)
	}

	return nil
}
