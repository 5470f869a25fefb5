package txpool

import (
	"github.com/iotaledger/hive.go/crypto/ed25519"
	iotago "github.com/iotaledger/iota.go/v4"
)

// TransactionPool tracks submitted transactions while they advance through the admission pipeline.
type TransactionPool interface {
	// Events returns the events of the TransactionPool.
	Events() *Events

	// AddTransaction admits a transaction into the received queue.
	AddTransaction(transaction *Transaction) error

	// AddTransactions admits the given transactions into the received queue and returns the ones that were added.
	AddTransactions(transactions []*Transaction) (added []*Transaction, err error)

	// RemoveTransactions removes the transactions with the given ids from whatever queue holds them.
	RemoveTransactions(ids ...iotago.TransactionID) (removed []*Transaction)

	// OnNewBlock updates the queues after a block was applied to the ledger.
	OnNewBlock(block *Block) error

	// OnDeleteBlock updates the queues after a block was reverted.
	OnDeleteBlock(block *Block) error

	// OnRoundRollback updates the queues after a consensus round affecting the given senders was reverted.
	OnRoundRollback(senderPublicKeys []ed25519.PublicKey) error

	// ProcessableTransactions returns up to limit transactions of the ready queue.
	ProcessableTransactions(limit int) []*Transaction

	// Exists returns true if a transaction with the given id is tracked by any queue.
	Exists(id iotago.TransactionID) bool

	// Transaction returns the transaction with the given id and the queue that tracks it.
	Transaction(id iotago.TransactionID) (transaction *Transaction, queueName QueueName, exists bool)

	// RejectionReason returns the reason why the transaction with the given id was recently rejected.
	RejectionReason(id iotago.TransactionID) (reason string, rejected bool)

	// IsConfirmed returns true if the transaction with the given id was recently included in an applied block.
	IsConfirmed(id iotago.TransactionID) bool

	// Transactions returns a copy of the transactions of the named queue.
	Transactions(queueName QueueName) ([]*Transaction, error)

	// QueueSize returns the number of transactions in the named queue.
	QueueSize(queueName QueueName) (int, error)

	// QueueSizes returns the number of transactions of every queue.
	QueueSizes() map[QueueName]int

	// IsShutdown returns true if the TransactionPool does not admit transactions because it was shut down.
	IsShutdown() bool

	// Start arms the jobs of the TransactionPool.
	Start()

	// Shutdown stops the jobs of the TransactionPool.
	Shutdown()
}
