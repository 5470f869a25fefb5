package queue

import (
	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Queue is an ordered collection of transactions that is indexed by transaction id.
//
// The Queue does not guard against duplicate ids: enqueuing an id twice keeps both entries in the sequence while
// the index points to the last one. Callers are expected to route each transaction into a single queue only.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	// transactions contains the transactions in the order they were enqueued.
	transactions []*txpool.Transaction

	// index maps the id of every transaction in the sequence to the transaction.
	index *shrinkingmap.ShrinkingMap[iotago.TransactionID, *txpool.Transaction]
}

// New creates a new empty Queue.
func New() *Queue {
	return &Queue{
		transactions: make([]*txpool.Transaction, 0),
		index:        shrinkingmap.New[iotago.TransactionID, *txpool.Transaction](),
	}
}

// EnqueueOne appends the given transaction to the tail of the Queue.
func (q *Queue) EnqueueOne(transaction *txpool.Transaction) {
	q.transactions = append(q.transactions, transaction)
	q.index.Set(transaction.ID, transaction)
}

// EnqueueMany appends the given transactions to the tail of the Queue, preserving their order.
func (q *Queue) EnqueueMany(transactions []*txpool.Transaction) {
	for _, transaction := range transactions {
		q.EnqueueOne(transaction)
	}
}

// Exists returns true if a transaction with the same id is part of the Queue.
func (q *Queue) Exists(transaction *txpool.Transaction) bool {
	return q.index.Has(transaction.ID)
}

// Has returns true if a transaction with the given id is part of the Queue.
func (q *Queue) Has(id iotago.TransactionID) bool {
	return q.index.Has(id)
}

// Get returns the transaction with the given id.
func (q *Queue) Get(id iotago.TransactionID) (transaction *txpool.Transaction, exists bool) {
	return q.index.Get(id)
}

// RemoveFor removes all transactions that satisfy the predicate and returns them in their original order.
func (q *Queue) RemoveFor(predicate txpool.Predicate) []*txpool.Transaction {
	removed := make([]*txpool.Transaction, 0)
	kept := make([]*txpool.Transaction, 0, len(q.transactions))

	for _, transaction := range q.transactions {
		if !predicate(transaction) {
			kept = append(kept, transaction)

			continue
		}

		removed = append(removed, transaction)
		q.unindex(transaction)
	}

	q.transactions = kept

	return removed
}

// DequeueUntil removes transactions from the tail of the Queue for as long as the predicate is satisfied. The
// removed transactions are returned in their original order (the oldest of the removed ones first).
func (q *Queue) DequeueUntil(predicate txpool.Predicate) []*txpool.Transaction {
	cut := q.tailCut(predicate)

	dequeued := make([]*txpool.Transaction, len(q.transactions)-cut)
	copy(dequeued, q.transactions[cut:])

	for i := cut; i < len(q.transactions); i++ {
		q.unindex(q.transactions[i])
		q.transactions[i] = nil
	}
	q.transactions = q.transactions[:cut]

	return dequeued
}

// PeekUntil returns the transactions that DequeueUntil would remove without modifying the Queue.
func (q *Queue) PeekUntil(predicate txpool.Predicate) []*txpool.Transaction {
	cut := q.tailCut(predicate)

	peeked := make([]*txpool.Transaction, len(q.transactions)-cut)
	copy(peeked, q.transactions[cut:])

	return peeked
}

// Filter returns the transactions that satisfy the predicate in their original order without modifying the Queue.
func (q *Queue) Filter(predicate txpool.Predicate) []*txpool.Transaction {
	filtered := make([]*txpool.Transaction, 0)
	for _, transaction := range q.transactions {
		if predicate(transaction) {
			filtered = append(filtered, transaction)
		}
	}

	return filtered
}

// Size returns the number of transactions in the Queue.
func (q *Queue) Size() int {
	return len(q.transactions)
}

// SizeBy returns the number of transactions that satisfy the predicate.
func (q *Queue) SizeBy(predicate txpool.Predicate) (count int) {
	for _, transaction := range q.transactions {
		if predicate(transaction) {
			count++
		}
	}

	return count
}

// Transactions returns a copy of the sequence of transactions.
func (q *Queue) Transactions() []*txpool.Transaction {
	transactions := make([]*txpool.Transaction, len(q.transactions))
	copy(transactions, q.transactions)

	return transactions
}

// tailCut walks the Queue from the tail and returns the position of the first transaction that is not removed.
func (q *Queue) tailCut(predicate txpool.Predicate) int {
	cut := len(q.transactions)
	for cut > 0 && predicate(q.transactions[cut-1]) {
		cut--
	}

	return cut
}

// unindex removes the transaction from the index unless the index already points to a newer duplicate.
func (q *Queue) unindex(transaction *txpool.Transaction) {
	if indexed, exists := q.index.Get(transaction.ID); exists && indexed == transaction {
		q.index.Delete(transaction.ID)
	}
}
