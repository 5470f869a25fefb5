package metrics

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

// PoolMetrics defines metrics over the entire runtime of the transaction pool.
type PoolMetrics struct {
	// The number of transactions that were admitted into the received queue.
	Admitted atomic.Uint64
	// The number of submitted transactions that were not admitted or failed a stage of the pipeline.
	Rejected atomic.Uint64
	// The number of transactions that were included in an applied block.
	Confirmed atomic.Uint64
	// The number of transactions that were moved back into the validated queue.
	Demoted atomic.Uint64
	// The number of transactions that were restored from a reverted block.
	Restored atomic.Uint64
	// The number of transactions that stayed in the pool for too long.
	Expired atomic.Uint64
	// The number of transactions that were removed explicitly.
	Evicted atomic.Uint64
}

// NewPoolMetrics creates PoolMetrics that are updated by the events of the given pool.
func NewPoolMetrics(events *txpool.Events) *PoolMetrics {
	m := &PoolMetrics{}

	events.TransactionsAdded.Hook(func(queueName txpool.QueueName, transactions []*txpool.Transaction) {
		if queueName == txpool.QueueReceived {
			m.Admitted.Add(uint64(len(transactions)))
		}
	})
	events.TransactionRejected.Hook(func(_ *txpool.Transaction, _ error) {
		m.Rejected.Inc()
	})
	events.TransactionsRemoved.Hook(func(_ txpool.QueueName, transactions []*txpool.Transaction, reason txpool.RemovalReason) {
		switch reason {
		case txpool.RemovalReasonConfirmed:
			m.Confirmed.Add(uint64(len(transactions)))
		case txpool.RemovalReasonExpired:
			m.Expired.Add(uint64(len(transactions)))
		case txpool.RemovalReasonEvicted:
			m.Evicted.Add(uint64(len(transactions)))
		}
	})
	events.TransactionsDemoted.Hook(func(transactions []*txpool.Transaction) {
		m.Demoted.Add(uint64(len(transactions)))
	})
	events.TransactionsRestored.Hook(func(transactions []*txpool.Transaction) {
		m.Restored.Add(uint64(len(transactions)))
	})

	return m
}
