package daemon

// Please add the dependencies if you add your own priority here.
// Otherwise investigating deadlocks at shutdown is much more complicated.

const (
	PriorityTransactionPool = iota // no dependencies
	PriorityRestAPI                // depends on TransactionPool
	PriorityMetrics                // depends on TransactionPool
)
