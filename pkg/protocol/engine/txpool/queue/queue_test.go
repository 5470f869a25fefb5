package queue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func newTransactions(count int) []*txpool.Transaction {
	transactions := make([]*txpool.Transaction, count)
	for i := range transactions {
		transactions[i] = &txpool.Transaction{
			ID:   tpkg.RandTransactionID(),
			Type: txpool.TransactionType(i % 3),
		}
	}

	return transactions
}

func countUntil(limit int) txpool.Predicate {
	var calls int

	return func(_ *txpool.Transaction) bool {
		calls++

		return calls <= limit
	}
}

func requireIndexConsistent(t *testing.T, q *Queue) {
	t.Helper()

	require.Equal(t, len(q.transactions), q.index.Size())
	for _, transaction := range q.transactions {
		indexed, exists := q.index.Get(transaction.ID)
		require.True(t, exists, "transaction %s is not indexed", transaction.ID)
		require.Same(t, transaction, indexed)
	}
}

func TestQueue_Enqueue(t *testing.T) {
	transactions := newTransactions(5)

	q := New()
	q.EnqueueOne(transactions[0])
	q.EnqueueMany(transactions[1:])

	require.Equal(t, transactions, q.Transactions())
	require.Equal(t, 5, q.Size())
	requireIndexConsistent(t, q)

	for _, transaction := range transactions {
		require.True(t, q.Exists(transaction))
		require.True(t, q.Has(transaction.ID))
	}

	require.False(t, q.Exists(newTransactions(1)[0]))

	got, exists := q.Get(transactions[3].ID)
	require.True(t, exists)
	require.Same(t, transactions[3], got)
}

func TestQueue_RemoveFor(t *testing.T) {
	transactions := newTransactions(10)

	q := New()
	q.EnqueueMany(transactions)

	isTransfer := func(transaction *txpool.Transaction) bool {
		return transaction.Type == txpool.TransactionTypeTransfer
	}

	var expectedRemoved, expectedKept []*txpool.Transaction
	for _, transaction := range transactions {
		if isTransfer(transaction) {
			expectedRemoved = append(expectedRemoved, transaction)
		} else {
			expectedKept = append(expectedKept, transaction)
		}
	}

	removed := q.RemoveFor(isTransfer)
	require.Equal(t, expectedRemoved, removed)
	require.Equal(t, expectedKept, q.Transactions())
	requireIndexConsistent(t, q)

	for _, transaction := range removed {
		require.False(t, q.Exists(transaction))
	}
}

func TestQueue_RemoveForNoMatch(t *testing.T) {
	transactions := newTransactions(4)

	q := New()
	q.EnqueueMany(transactions)

	removed := q.RemoveFor(func(*txpool.Transaction) bool { return false })
	require.NotNil(t, removed)
	require.Empty(t, removed)
	require.Equal(t, transactions, q.Transactions())
	requireIndexConsistent(t, q)
}

func TestQueue_RemoveForAll(t *testing.T) {
	q := New()
	q.EnqueueMany(newTransactions(4))

	require.Len(t, q.RemoveFor(func(*txpool.Transaction) bool { return true }), 4)
	require.Zero(t, q.Size())
	requireIndexConsistent(t, q)
}

func TestQueue_DequeueUntil(t *testing.T) {
	transactions := newTransactions(10)

	q := New()
	q.EnqueueMany(transactions)

	dequeued := q.DequeueUntil(countUntil(2))
	require.Equal(t, []*txpool.Transaction{transactions[8], transactions[9]}, dequeued)
	require.Equal(t, transactions[:8], q.Transactions())
	requireIndexConsistent(t, q)

	require.False(t, q.Has(transactions[8].ID))
	require.False(t, q.Has(transactions[9].ID))
}

func TestQueue_DequeueUntilStopsAtFirstFalse(t *testing.T) {
	transactions := newTransactions(6)
	transactions[3].Type = txpool.TransactionTypeVote
	transactions[4].Type = txpool.TransactionTypeTransfer
	transactions[5].Type = txpool.TransactionTypeTransfer

	q := New()
	q.EnqueueMany(transactions)

	dequeued := q.DequeueUntil(func(transaction *txpool.Transaction) bool {
		return transaction.Type == txpool.TransactionTypeTransfer
	})
	require.Equal(t, transactions[4:], dequeued)
	require.Equal(t, transactions[:4], q.Transactions())
	requireIndexConsistent(t, q)
}

func TestQueue_DequeueUntilEmpty(t *testing.T) {
	q := New()
	require.Empty(t, q.DequeueUntil(func(*txpool.Transaction) bool { return true }))

	transactions := newTransactions(3)
	q.EnqueueMany(transactions)

	require.Equal(t, transactions, q.DequeueUntil(countUntil(10)))
	require.Zero(t, q.Size())
	requireIndexConsistent(t, q)
}

func TestQueue_PeekUntil(t *testing.T) {
	transactions := newTransactions(5)

	q := New()
	q.EnqueueMany(transactions)

	require.Equal(t, transactions[2:], q.PeekUntil(countUntil(3)))
	require.Equal(t, transactions, q.Transactions())
	requireIndexConsistent(t, q)
}

func TestQueue_FilterAndSizeBy(t *testing.T) {
	transactions := newTransactions(9)

	q := New()
	q.EnqueueMany(transactions)

	isDelegate := func(transaction *txpool.Transaction) bool {
		return transaction.Type == txpool.TransactionTypeDelegate
	}

	filtered := q.Filter(isDelegate)
	require.Equal(t, []*txpool.Transaction{transactions[2], transactions[5], transactions[8]}, filtered)
	require.Equal(t, 3, q.SizeBy(isDelegate))
	require.Equal(t, 9, q.Size())
}

func TestQueue_IdentityInvariant(t *testing.T) {
	q := New()

	for round := 0; round < 20; round++ {
		q.EnqueueMany(newTransactions(round % 7))
		requireIndexConsistent(t, q)

		q.RemoveFor(func(transaction *txpool.Transaction) bool {
			return transaction.ID[0]%2 == 0
		})
		requireIndexConsistent(t, q)

		q.DequeueUntil(countUntil(round % 3))
		requireIndexConsistent(t, q)
	}
}

func TestQueue_DuplicateLastWriteWins(t *testing.T) {
	transaction := newTransactions(1)[0]
	duplicate := &txpool.Transaction{ID: transaction.ID, Type: txpool.TransactionTypeVote}

	q := New()
	q.EnqueueOne(transaction)
	q.EnqueueOne(duplicate)

	require.Equal(t, 2, q.Size())

	indexed, exists := q.Get(transaction.ID)
	require.True(t, exists)
	require.Same(t, duplicate, indexed)
}
