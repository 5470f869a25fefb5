package metrics

import (
	"github.com/iotaledger/iota-txpool/components/metrics/collector"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

const (
	txPoolNamespace = "txpool"

	queueSize            = "queue_size"
	transactionsAdded    = "transactions_added_total"
	transactionsRemoved  = "transactions_removed_total"
	transactionsRejected = "transactions_rejected_total"
	transactionsDemoted  = "transactions_demoted_total"
	transactionsRestored = "transactions_restored_total"
	verifiedOnce         = "transactions_verified_once_total"
)

// TxPoolMetrics exports the queue sizes and the transitions of the transaction pool.
var TxPoolMetrics = collector.NewCollection(txPoolNamespace,
	collector.WithMetrics(collector.NewMetric(queueSize,
		collector.WithType(collector.Gauge),
		collector.WithHelp("Number of transactions per queue."),
		collector.WithLabels("queue"),
		collector.WithResetBeforeCollecting(true),
		collector.WithCollectFunc(func(update collector.UpdateFunc) {
			if !ParamsMetrics.TxPool.QueueSizes {
				return
			}

			for queueName, size := range deps.TransactionPool.QueueSizes() {
				update(float64(size), string(queueName))
			}
		}),
	)),
	collector.WithMetrics(collector.NewMetric(transactionsAdded,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that entered a queue."),
		collector.WithLabels("queue"),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionsAdded.Hook(func(queueName txpool.QueueName, transactions []*txpool.Transaction) {
				deps.Collector.Update(txPoolNamespace, transactionsAdded, float64(len(transactions)), string(queueName))
			})
		}),
	)),
	collector.WithMetrics(collector.NewMetric(transactionsRemoved,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that left a queue."),
		collector.WithLabels("queue", "reason"),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionsRemoved.Hook(func(queueName txpool.QueueName, transactions []*txpool.Transaction, reason txpool.RemovalReason) {
				deps.Collector.Update(txPoolNamespace, transactionsRemoved, float64(len(transactions)), string(queueName), reason.String())
			})
		}),
	)),
	collector.WithMetrics(collector.NewMetric(transactionsRejected,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that were not admitted or failed a stage of the pipeline."),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionRejected.Hook(func(_ *txpool.Transaction, _ error) {
				deps.Collector.Increment(txPoolNamespace, transactionsRejected)
			})
		}),
	)),
	collector.WithMetrics(collector.NewMetric(transactionsDemoted,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that were moved back to the validated queue."),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionsDemoted.Hook(func(transactions []*txpool.Transaction) {
				deps.Collector.Update(txPoolNamespace, transactionsDemoted, float64(len(transactions)))
			})
		}),
	)),
	collector.WithMetrics(collector.NewMetric(transactionsRestored,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that re-entered the pool from a reverted block."),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionsRestored.Hook(func(transactions []*txpool.Transaction) {
				deps.Collector.Update(txPoolNamespace, transactionsRestored, float64(len(transactions)))
			})
		}),
	)),
	collector.WithMetrics(collector.NewMetric(verifiedOnce,
		collector.WithType(collector.Counter),
		collector.WithHelp("Number of transactions that reached the verified queue for the first time."),
		collector.WithInitFunc(func() {
			deps.TransactionPool.Events().TransactionVerifiedOnce.Hook(func(_ *txpool.Transaction) {
				deps.Collector.Increment(txPoolNamespace, verifiedOnce)
			})
		}),
	)),
)
