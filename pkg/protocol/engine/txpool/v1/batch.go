package txpoolv1

import (
	"github.com/iotaledger/hive.go/ds"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	iotago "github.com/iotaledger/iota.go/v4"
)

// batch collects the transitions of a single operation of the TransactionPool. Nothing is applied to the queues
// before the whole batch was planned and validated.
type batch struct {
	pool *TransactionPool

	// removals contains the planned removals in the order they were planned.
	removals []*removal

	// insertions contains the planned insertions in the order they were planned.
	insertions []*insertion

	// planned contains every transaction that is scheduled for removal.
	planned ds.Set[*txpool.Transaction]

	// reasons overrides the removal reason of single transactions.
	reasons map[*txpool.Transaction]txpool.RemovalReason

	// committed contains the callbacks that are executed after the queues were updated.
	committed []func()

	// notifications contains the event triggers that are executed after the pool was unlocked.
	notifications []func()
}

type removal struct {
	queueName    txpool.QueueName
	transactions []*txpool.Transaction
	reason       txpool.RemovalReason

	// drain is set if the transactions are the tail of the queue.
	drain bool
}

type insertion struct {
	queueName    txpool.QueueName
	transactions []*txpool.Transaction
}

func newBatch(pool *TransactionPool) *batch {
	return &batch{
		pool:    pool,
		planned: ds.NewSet[*txpool.Transaction](),
		reasons: make(map[*txpool.Transaction]txpool.RemovalReason),
	}
}

// remove plans the removal of all transactions of the queue that satisfy the predicate and are not planned for
// removal already.
func (b *batch) remove(queueName txpool.QueueName, predicate txpool.Predicate, reason txpool.RemovalReason) []*txpool.Transaction {
	matched := b.pool.queues[queueName].Filter(func(transaction *txpool.Transaction) bool {
		return !b.planned.Has(transaction) && predicate(transaction)
	})

	return b.planRemoval(&removal{queueName: queueName, transactions: matched, reason: reason})
}

// drain plans the removal of up to limit transactions from the tail of the queue.
func (b *batch) drain(queueName txpool.QueueName, limit int, reason txpool.RemovalReason) []*txpool.Transaction {
	if limit <= 0 {
		return nil
	}

	var count int
	tail := b.pool.queues[queueName].PeekUntil(func(transaction *txpool.Transaction) bool {
		if count >= limit || b.planned.Has(transaction) {
			return false
		}
		count++

		return true
	})

	return b.planRemoval(&removal{queueName: queueName, transactions: tail, reason: reason, drain: true})
}

// classify overrides the removal reason of the given planned transactions.
func (b *batch) classify(transactions []*txpool.Transaction, reason txpool.RemovalReason) {
	for _, transaction := range transactions {
		b.reasons[transaction] = reason
	}
}

// insert plans the insertion of the given transactions at the tail of the queue.
func (b *batch) insert(queueName txpool.QueueName, transactions []*txpool.Transaction) {
	if len(transactions) == 0 {
		return
	}

	b.insertions = append(b.insertions, &insertion{queueName: queueName, transactions: transactions})
}

// onCommit registers a callback that is executed after the queues were updated.
func (b *batch) onCommit(callback func()) {
	b.committed = append(b.committed, callback)
}

// notify registers an event trigger that is executed after the pool was unlocked.
func (b *batch) notify(trigger func()) {
	b.notifications = append(b.notifications, trigger)
}

// validate checks that every transaction id occupies at most one queue after the batch was applied.
func (b *batch) validate() error {
	inserted := ds.NewSet[iotago.TransactionID]()

	for _, plannedInsertion := range b.insertions {
		for _, transaction := range plannedInsertion.transactions {
			if inserted.Has(transaction.ID) {
				return ierrors.Wrapf(txpool.ErrIdentityInvariantViolated, "transaction %s is inserted twice", transaction.ID)
			}
			inserted.Add(transaction.ID)

			for _, queueName := range txpool.QueueNames {
				if occupant, exists := b.pool.queues[queueName].Get(transaction.ID); exists && !b.planned.Has(occupant) {
					return ierrors.Wrapf(txpool.ErrIdentityInvariantViolated, "transaction %s is already part of the %s queue", transaction.ID, queueName)
				}
			}
		}
	}

	return nil
}

// commit applies the planned removals and insertions to the queues.
func (b *batch) commit() {
	for _, plannedRemoval := range b.removals {
		targetQueue := b.pool.queues[plannedRemoval.queueName]
		transactions := ds.NewSet(plannedRemoval.transactions...)

		var removed []*txpool.Transaction
		if plannedRemoval.drain {
			removed = targetQueue.DequeueUntil(transactions.Has)
		} else {
			removed = targetQueue.RemoveFor(transactions.Has)
		}

		b.notifyRemoved(plannedRemoval.queueName, removed, plannedRemoval.reason)
	}

	for _, plannedInsertion := range b.insertions {
		b.pool.queues[plannedInsertion.queueName].EnqueueMany(plannedInsertion.transactions)

		b.notifyAdded(plannedInsertion.queueName, plannedInsertion.transactions)
	}

	for _, callback := range b.committed {
		callback()
	}
}

// trigger executes the collected event triggers.
func (b *batch) trigger() {
	for _, notification := range b.notifications {
		notification()
	}
}

func (b *batch) planRemoval(plannedRemoval *removal) []*txpool.Transaction {
	if len(plannedRemoval.transactions) == 0 {
		return plannedRemoval.transactions
	}

	for _, transaction := range plannedRemoval.transactions {
		b.planned.Add(transaction)
	}
	b.removals = append(b.removals, plannedRemoval)

	return plannedRemoval.transactions
}

func (b *batch) notifyRemoved(queueName txpool.QueueName, removed []*txpool.Transaction, defaultReason txpool.RemovalReason) {
	reasons := make([]txpool.RemovalReason, 0)
	removedByReason := make(map[txpool.RemovalReason][]*txpool.Transaction)

	for _, transaction := range removed {
		reason, overridden := b.reasons[transaction]
		if !overridden {
			reason = defaultReason
		}

		if _, exists := removedByReason[reason]; !exists {
			reasons = append(reasons, reason)
		}
		removedByReason[reason] = append(removedByReason[reason], transaction)

		if reason.IsFinal() {
			b.pool.forgetVerified(transaction.ID)
		}
	}

	for _, reason := range reasons {
		transactions := removedByReason[reason]

		b.notify(func() {
			b.pool.events.TransactionsRemoved.Trigger(queueName, transactions, reason)
		})
	}
}

func (b *batch) notifyAdded(queueName txpool.QueueName, added []*txpool.Transaction) {
	b.notify(func() {
		b.pool.events.TransactionsAdded.Trigger(queueName, added)
	})

	if queueName != txpool.QueueVerified {
		return
	}

	for _, transaction := range added {
		if b.pool.markVerified(transaction.ID) {
			b.notify(func() {
				b.pool.events.TransactionVerifiedOnce.Trigger(transaction)
			})
		}
	}
}
