package txpooltests

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	iotago "github.com/iotaledger/iota.go/v4"
)

// InstanceProvider creates the TransactionPool under test. The returned promote function runs the promotion step
// that fills the given queue.
type InstanceProvider func(tf *TestFramework) (instance txpool.TransactionPool, promote func(queueName txpool.QueueName))

type TestFramework struct {
	Instance txpool.TransactionPool

	promote            func(queueName txpool.QueueName)
	transactionByAlias map[string]*txpool.Transaction
	aliasByID          map[iotago.TransactionID]string
	invalidAliases     map[string]bool
	signedAliases      map[string]bool
	demotedCount       int
	restoredCount      int
	rejectedCount      int
	verifiedOnceCount  map[iotago.TransactionID]int
	test               *testing.T
	mutex              sync.RWMutex
}

func NewTestFramework(test *testing.T, provider InstanceProvider) *TestFramework {
	t := &TestFramework{
		transactionByAlias: make(map[string]*txpool.Transaction),
		aliasByID:          make(map[iotago.TransactionID]string),
		invalidAliases:     make(map[string]bool),
		signedAliases:      make(map[string]bool),
		verifiedOnceCount:  make(map[iotago.TransactionID]int),
		test:               test,
	}

	t.Instance, t.promote = provider(t)

	t.setupHookedEvents()

	return t
}

// CreateTransaction creates a transaction of the given type that is sent by the given sender to the given recipient
// (an empty recipient creates a transaction without recipient).
func (t *TestFramework) CreateTransaction(alias string, sender string, recipient string, transactionType txpool.TransactionType) *txpool.Transaction {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	transaction := &txpool.Transaction{
		ID:              t.transactionID(alias),
		SenderPublicKey: t.SenderPublicKey(sender),
		Type:            transactionType,
	}

	if recipient != "" {
		recipientID := t.AccountID(recipient)
		transaction.RecipientID = &recipientID
	}

	t.transactionByAlias[alias] = transaction
	t.aliasByID[transaction.ID] = alias

	return transaction
}

// CreateTransfer creates a transfer transaction.
func (t *TestFramework) CreateTransfer(alias string, sender string, recipient string) *txpool.Transaction {
	return t.CreateTransaction(alias, sender, recipient, txpool.TransactionTypeTransfer)
}

func (t *TestFramework) Transaction(alias string) *txpool.Transaction {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	transaction, exists := t.transactionByAlias[alias]
	require.True(t.test, exists, "transaction with alias '%s' does not exist", alias)

	return transaction
}

func (t *TestFramework) Transactions(aliases ...string) []*txpool.Transaction {
	return lo.Map(aliases, t.Transaction)
}

// Block creates a block that contains the transactions with the given aliases.
func (t *TestFramework) Block(aliases ...string) *txpool.Block {
	return txpool.NewBlock(t.Transactions(aliases...)...)
}

func (t *TestFramework) SenderPublicKey(sender string) ed25519.PublicKey {
	return blake2b.Sum256([]byte("sender:" + sender))
}

func (t *TestFramework) SenderPublicKeys(senders ...string) []ed25519.PublicKey {
	return lo.Map(senders, t.SenderPublicKey)
}

func (t *TestFramework) AccountID(account string) iotago.AccountID {
	accountID := iotago.AccountID(blake2b.Sum256([]byte("account:" + account)))
	accountID.RegisterAlias(account)

	return accountID
}

func (t *TestFramework) AddTransactions(aliases ...string) error {
	_, err := t.Instance.AddTransactions(t.Transactions(aliases...))

	return err
}

// Promote runs the promotion steps that fill the given queues in the given order.
func (t *TestFramework) Promote(queueNames ...txpool.QueueName) {
	for _, queueName := range queueNames {
		t.promote(queueName)
	}
}

// PromoteToReady runs all promotion steps once.
func (t *TestFramework) PromoteToReady() {
	t.Promote(txpool.QueueValidated, txpool.QueueVerified, txpool.QueueReady)
}

// MarkInvalid makes the collaborators of the pool reject the transactions with the given aliases.
func (t *TestFramework) MarkInvalid(aliases ...string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, alias := range aliases {
		t.invalidAliases[alias] = true
	}
}

// MarkSigned makes the pending transactions with the given aliases ready for processing.
func (t *TestFramework) MarkSigned(aliases ...string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, alias := range aliases {
		t.signedAliases[alias] = true
	}
}

// Validate rejects the transactions that were marked invalid.
func (t *TestFramework) Validate(transactions []*txpool.Transaction) (valid []*txpool.Transaction, invalid []*txpool.Transaction) {
	for _, transaction := range transactions {
		if t.isInvalid(transaction) {
			invalid = append(invalid, transaction)
		} else {
			valid = append(valid, transaction)
		}
	}

	return valid, invalid
}

// Verify routes multi-signature transactions into the pending queue.
func (t *TestFramework) Verify(transactions []*txpool.Transaction) (verified []*txpool.Transaction, pending []*txpool.Transaction, invalid []*txpool.Transaction) {
	for _, transaction := range transactions {
		switch {
		case t.isInvalid(transaction):
			invalid = append(invalid, transaction)
		case transaction.Type == txpool.TransactionTypeMultisignature:
			pending = append(pending, transaction)
		default:
			verified = append(verified, transaction)
		}
	}

	return verified, pending, invalid
}

// Process accepts every transaction that was not marked invalid.
func (t *TestFramework) Process(transactions []*txpool.Transaction) (processable []*txpool.Transaction, unprocessable []*txpool.Transaction) {
	return t.Validate(transactions)
}

// ReadyForProcessing returns true for pending transactions that were marked signed.
func (t *TestFramework) ReadyForProcessing(transaction *txpool.Transaction) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.signedAliases[t.aliasByID[transaction.ID]]
}

func (t *TestFramework) RequireQueue(queueName txpool.QueueName, aliases ...string) {
	transactions, err := t.Instance.Transactions(queueName)
	require.NoError(t.test, err)

	expected := make([]string, 0, len(aliases))
	expected = append(expected, aliases...)

	actual := make([]string, 0, len(transactions))
	for _, transaction := range transactions {
		actual = append(actual, t.alias(transaction))
	}

	require.Equal(t.test, expected, actual, "unexpected content of the %s queue", queueName)
}

func (t *TestFramework) RequireQueues(expectedAliases map[txpool.QueueName][]string) {
	for _, queueName := range txpool.QueueNames {
		t.RequireQueue(queueName, expectedAliases[queueName]...)
	}

	t.RequireIdentityInvariant()
}

func (t *TestFramework) RequireTracked(queueName txpool.QueueName, aliases ...string) {
	for _, alias := range aliases {
		_, trackingQueue, exists := t.Instance.Transaction(t.Transaction(alias).ID)
		require.True(t.test, exists, "transaction %s is not tracked", alias)
		require.Equal(t.test, queueName, trackingQueue, "transaction %s is tracked by the wrong queue", alias)
	}
}

func (t *TestFramework) RequireAbsent(aliases ...string) {
	for _, alias := range aliases {
		require.False(t.test, t.Instance.Exists(t.Transaction(alias).ID), "transaction %s is still tracked", alias)
	}
}

// RequireIdentityInvariant checks that no transaction id is part of more than one queue.
func (t *TestFramework) RequireIdentityInvariant() {
	queueByID := make(map[iotago.TransactionID]txpool.QueueName)

	for _, queueName := range txpool.QueueNames {
		transactions, err := t.Instance.Transactions(queueName)
		require.NoError(t.test, err)

		for _, transaction := range transactions {
			otherQueue, exists := queueByID[transaction.ID]
			require.False(t.test, exists, "transaction %s is part of the %s and the %s queue", transaction.ID, otherQueue, queueName)

			queueByID[transaction.ID] = queueName
		}
	}
}

func (t *TestFramework) RequireEventCounts(demoted int, restored int, rejected int) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	require.Equal(t.test, demoted, t.demotedCount, "unexpected number of demoted transactions")
	require.Equal(t.test, restored, t.restoredCount, "unexpected number of restored transactions")
	require.Equal(t.test, rejected, t.rejectedCount, "unexpected number of rejected transactions")
}

func (t *TestFramework) RequireVerifiedOnce(alias string, count int) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	require.Equal(t.test, count, t.verifiedOnceCount[t.transactionByAlias[alias].ID], "unexpected number of TransactionVerifiedOnce events for %s", alias)
}

func (t *TestFramework) transactionID(alias string) iotago.TransactionID {
	hash := blake2b.Sum256([]byte("transaction:" + alias))

	var transactionID iotago.TransactionID
	copy(transactionID[:], hash[:])
	transactionID.RegisterAlias(alias)

	return transactionID
}

func (t *TestFramework) alias(transaction *txpool.Transaction) string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	alias, exists := t.aliasByID[transaction.ID]
	require.True(t.test, exists, "transaction %s was not created by the test framework", transaction.ID)

	return alias
}

func (t *TestFramework) isInvalid(transaction *txpool.Transaction) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.invalidAliases[t.aliasByID[transaction.ID]]
}

func (t *TestFramework) setupHookedEvents() {
	t.Instance.Events().TransactionsDemoted.Hook(func(transactions []*txpool.Transaction) {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		t.demotedCount += len(transactions)
	})

	t.Instance.Events().TransactionsRestored.Hook(func(transactions []*txpool.Transaction) {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		t.restoredCount += len(transactions)
	})

	t.Instance.Events().TransactionRejected.Hook(func(_ *txpool.Transaction, _ error) {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		t.rejectedCount++
	})

	t.Instance.Events().TransactionVerifiedOnce.Hook(func(transaction *txpool.Transaction) {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		t.verifiedOnceCount[transaction.ID]++
	})
}
