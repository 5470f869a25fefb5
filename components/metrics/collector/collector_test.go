package collector

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/lo"
)

func TestCollector(t *testing.T) {
	sizes := map[string]int{"received": 3, "ready": 1}

	c := New()
	collection := NewCollection("txpool",
		WithMetrics(NewMetric("queue_size",
			WithType(Gauge),
			WithLabels("queue"),
			WithCollectFunc(func(update UpdateFunc) {
				for queueName, size := range sizes {
					update(float64(size), queueName)
				}
			}),
		)),
		WithMetrics(NewMetric("transactions_rejected_total",
			WithType(Counter),
		)),
		WithMetrics(NewMetric("transactions_removed_total",
			WithType(Counter),
			WithLabels("queue", "reason"),
		)),
	)
	require.NoError(t, c.RegisterCollection(collection))
	require.Error(t, c.RegisterCollection(collection))
	require.Equal(t, []string{"queue_size", "transactions_rejected_total", "transactions_removed_total"}, lo.Map(collection.Metrics(), func(metric *Metric) string { return metric.Name }))

	c.Collect()
	count, err := testutil.GatherAndCount(c.Registry, "txpool_queue_size")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	queueSize := c.getMetric("txpool", "queue_size")
	require.NotNil(t, queueSize)

	c.Increment("txpool", "transactions_rejected_total")
	c.Update("txpool", "transactions_rejected_total", 2)
	c.Update("txpool", "transactions_removed_total", 3, "ready", "confirmed")
	c.Update("txpool", "transactions_removed_total", 1, "ready")
	c.Increment("unknown", "transactions_rejected_total")

	rejected := c.getMetric("txpool", "transactions_rejected_total")
	require.InDelta(t, 3, testutil.ToFloat64(rejected.promMetric), 0)
	require.Equal(t, 1, testutil.CollectAndCount(c.getMetric("txpool", "transactions_removed_total").promMetric))

	c.ResetMetric("txpool", "queue_size")
	require.Equal(t, 0, testutil.CollectAndCount(queueSize.promMetric))
}
