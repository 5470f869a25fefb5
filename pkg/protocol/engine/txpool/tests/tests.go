package txpooltests

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

func TestAll(t *testing.T, frameworkProvider func(*testing.T) *TestFramework) {
	for testName, testCase := range map[string]func(*testing.T, *TestFramework){
		"TestAddTransactions":                 TestAddTransactions,
		"TestPromotion":                       TestPromotion,
		"TestOnNewBlock":                      TestOnNewBlock,
		"TestOnNewBlockDemotesIncluded":       TestOnNewBlockDemotesIncludedTransactions,
		"TestOnDeleteBlock":                   TestOnDeleteBlock,
		"TestRestoreConfirmedTransactions":    TestRestoreConfirmedTransactions,
		"TestOnRoundRollback":                 TestOnRoundRollback,
		"TestRemoveTransactions":              TestRemoveTransactions,
		"TestProcessableTransactions":         TestProcessableTransactions,
		"TestIdentityInvariantAcrossEvents":   TestIdentityInvariantAcrossEvents,
		"TestQueueAccessWithUnknownQueueName": TestQueueAccessWithUnknownQueueName,
	} {
		t.Run(testName, func(t *testing.T) { testCase(t, frameworkProvider(t)) })
	}
}

func TestAddTransactions(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransfer("tx3", "erin", "")

	require.NoError(t, tf.AddTransactions("tx1", "tx2"))
	tf.RequireQueue(txpool.QueueReceived, "tx1", "tx2")

	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx2")), txpool.ErrTransactionExists)

	added, err := tf.Instance.AddTransactions(tf.Transactions("tx3", "tx3"))
	require.ErrorIs(t, err, txpool.ErrTransactionExists)
	require.Equal(t, tf.Transactions("tx3"), added)

	require.ErrorIs(t, tf.Instance.AddTransaction(nil), txpool.ErrInvalidTransaction)

	tf.Promote(txpool.QueueValidated)
	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx1")), txpool.ErrTransactionExists)

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx1", "tx2", "tx3"},
	})
	tf.RequireEventCounts(0, 0, 3)

	size, err := tf.Instance.QueueSize(txpool.QueueValidated)
	require.NoError(t, err)
	require.Equal(t, 3, size)
	require.Equal(t, map[txpool.QueueName]int{
		txpool.QueueReceived:  0,
		txpool.QueueValidated: 3,
		txpool.QueuePending:   0,
		txpool.QueueVerified:  0,
		txpool.QueueReady:     0,
	}, tf.Instance.QueueSizes())
}

func TestPromotion(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransaction("tx2", "carol", "dave", txpool.TransactionTypeMultisignature)
	tf.CreateTransfer("tx3", "erin", "bob")
	tf.CreateTransaction("tx4", "frank", "", txpool.TransactionTypeVote)

	tf.MarkInvalid("tx3")
	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3", "tx4"))

	tf.Promote(txpool.QueueValidated)
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx1", "tx2", "tx4"},
	})
	tf.RequireAbsent("tx3")

	tf.Promote(txpool.QueueVerified)
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueuePending:  {"tx2"},
		txpool.QueueVerified: {"tx1", "tx4"},
	})

	tf.Promote(txpool.QueueReady)
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueuePending: {"tx2"},
		txpool.QueueReady:   {"tx1", "tx4"},
	})

	tf.MarkSigned("tx2")
	tf.Promote(txpool.QueueReady)
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReady: {"tx1", "tx4", "tx2"},
	})

	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx3")), txpool.ErrTransactionRejected)

	tf.RequireEventCounts(0, 0, 2)
	tf.RequireVerifiedOnce("tx1", 1)
	tf.RequireVerifiedOnce("tx2", 0)
}

func TestOnNewBlock(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransfer("tx3", "alice", "erin")
	tf.CreateTransfer("tx4", "frank", "bob")
	tf.CreateTransfer("tx5", "carol", "bob")
	tf.CreateTransfer("tx6", "grace", "heidi")
	tf.CreateTransfer("tx7", "alice", "ivan")
	tf.CreateTransfer("tx8", "judy", "bob")

	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3", "tx4"))
	tf.PromoteToReady()

	require.NoError(t, tf.AddTransactions("tx5", "tx6"))
	tf.Promote(txpool.QueueValidated, txpool.QueueVerified)

	require.NoError(t, tf.AddTransactions("tx7"))
	tf.Promote(txpool.QueueValidated)

	require.NoError(t, tf.AddTransactions("tx8"))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReceived:  {"tx8"},
		txpool.QueueValidated: {"tx7"},
		txpool.QueueVerified:  {"tx5", "tx6"},
		txpool.QueueReady:     {"tx1", "tx2", "tx3", "tx4"},
	})

	require.NoError(t, tf.Instance.OnNewBlock(tf.Block("tx1", "tx8")))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx7", "tx1", "tx3"},
		txpool.QueueVerified:  {"tx5", "tx6"},
		txpool.QueueReady:     {"tx2", "tx4"},
	})
	tf.RequireTracked(txpool.QueueValidated, "tx1")
	tf.RequireAbsent("tx8")
	tf.RequireEventCounts(2, 0, 0)

	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx1")), txpool.ErrTransactionConfirmed)
	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx8")), txpool.ErrTransactionConfirmed)

	// applying the same block again removes the demoted copy from the validated queue
	require.NoError(t, tf.Instance.OnNewBlock(tf.Block("tx1", "tx8")))
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx7", "tx3"},
		txpool.QueueVerified:  {"tx5", "tx6"},
		txpool.QueueReady:     {"tx2", "tx4"},
	})
	tf.RequireEventCounts(2, 0, 2)
}

func TestOnNewBlockDemotesIncludedTransactions(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransaction("tx3", "erin", "frank", txpool.TransactionTypeMultisignature)

	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3"))
	tf.PromoteToReady()
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueuePending: {"tx3"},
		txpool.QueueReady:   {"tx1", "tx2"},
	})

	require.NoError(t, tf.Instance.OnNewBlock(tf.Block("tx1", "tx3")))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx3", "tx1"},
		txpool.QueueReady:     {"tx2"},
	})
	tf.RequireEventCounts(2, 0, 0)
	tf.RequireIdentityInvariant()
}

func TestOnDeleteBlock(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransaction("tx3", "erin", "bob", txpool.TransactionTypeMultisignature)
	tf.CreateTransfer("tx4", "frank", "grace")
	tf.CreateTransfer("tx5", "heidi", "bob")
	tf.CreateTransfer("tx6", "ivan", "judy")
	tf.CreateTransfer("tx7", "mallory", "judy")

	require.NoError(t, tf.AddTransactions("tx2", "tx3", "tx4"))
	tf.PromoteToReady()

	require.NoError(t, tf.AddTransactions("tx5"))
	tf.Promote(txpool.QueueValidated, txpool.QueueVerified)

	require.NoError(t, tf.AddTransactions("tx6", "tx7"))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReceived: {"tx6", "tx7"},
		txpool.QueuePending:  {"tx3"},
		txpool.QueueVerified: {"tx5"},
		txpool.QueueReady:    {"tx2", "tx4"},
	})

	require.NoError(t, tf.Instance.OnDeleteBlock(tf.Block("tx1", "tx6")))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReceived:  {"tx7"},
		txpool.QueueValidated: {"tx3", "tx5"},
		txpool.QueueVerified:  {"tx1", "tx6"},
		txpool.QueueReady:     {"tx2", "tx4"},
	})
	tf.RequireTracked(txpool.QueueVerified, "tx1", "tx6")
	tf.RequireEventCounts(2, 2, 0)
	tf.RequireVerifiedOnce("tx1", 1)
	tf.RequireVerifiedOnce("tx5", 1)
}

func TestRestoreConfirmedTransactions(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")

	require.NoError(t, tf.AddTransactions("tx1", "tx2"))
	tf.PromoteToReady()

	require.NoError(t, tf.Instance.OnNewBlock(tf.Block("tx1", "tx2")))
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx1", "tx2"},
	})
	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx1")), txpool.ErrTransactionConfirmed)

	// the demoted copies are confirmed by the next block
	require.NoError(t, tf.Instance.OnNewBlock(tf.Block("tx1", "tx2")))
	tf.RequireQueues(map[txpool.QueueName][]string{})
	require.True(t, tf.Instance.IsConfirmed(tf.Transaction("tx1").ID))

	require.NoError(t, tf.Instance.OnDeleteBlock(tf.Block("tx1", "tx2")))
	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueVerified: {"tx1", "tx2"},
	})
	require.False(t, tf.Instance.IsConfirmed(tf.Transaction("tx1").ID))
	require.ErrorIs(t, tf.Instance.AddTransaction(tf.Transaction("tx1")), txpool.ErrTransactionExists)

	// restored transactions reached the verified queue before
	tf.RequireVerifiedOnce("tx1", 1)
	tf.RequireVerifiedOnce("tx2", 1)
	tf.RequireEventCounts(2, 2, 2)
}

func TestOnRoundRollback(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransaction("tx3", "alice", "erin", txpool.TransactionTypeMultisignature)
	tf.CreateTransaction("tx4", "dave", "", txpool.TransactionTypeDelegate)
	tf.CreateTransfer("tx5", "alice", "frank")
	tf.CreateTransfer("tx6", "alice", "grace")

	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3", "tx4"))
	tf.PromoteToReady()

	require.NoError(t, tf.AddTransactions("tx5"))
	tf.Promote(txpool.QueueValidated, txpool.QueueVerified)

	require.NoError(t, tf.AddTransactions("tx6"))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReceived: {"tx6"},
		txpool.QueuePending:  {"tx3"},
		txpool.QueueVerified: {"tx5"},
		txpool.QueueReady:    {"tx1", "tx2", "tx4"},
	})

	require.NoError(t, tf.Instance.OnRoundRollback(tf.SenderPublicKeys("alice", "mallory")))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReceived:  {"tx6"},
		txpool.QueueValidated: {"tx3", "tx5", "tx1"},
		txpool.QueueReady:     {"tx2", "tx4"},
	})
	tf.RequireEventCounts(3, 0, 0)

	require.NoError(t, tf.Instance.OnRoundRollback(nil))
	tf.RequireEventCounts(3, 0, 0)
}

func TestRemoveTransactions(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransfer("tx3", "erin", "frank")
	tf.CreateTransfer("tx4", "grace", "heidi")

	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3"))
	tf.Promote(txpool.QueueValidated)
	require.NoError(t, tf.AddTransactions("tx4"))

	removed := tf.Instance.RemoveTransactions(tf.Transaction("tx2").ID, tf.Transaction("tx4").ID)
	require.ElementsMatch(t, tf.Transactions("tx2", "tx4"), removed)

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueValidated: {"tx1", "tx3"},
	})
	tf.RequireAbsent("tx2", "tx4")

	require.Empty(t, tf.Instance.RemoveTransactions(tf.Transaction("tx2").ID))

	// evicted transactions can be submitted again
	require.NoError(t, tf.AddTransactions("tx2"))
	tf.RequireTracked(txpool.QueueReceived, "tx2")
}

func TestProcessableTransactions(t *testing.T, tf *TestFramework) {
	tf.CreateTransfer("tx1", "alice", "bob")
	tf.CreateTransfer("tx2", "carol", "dave")
	tf.CreateTransfer("tx3", "erin", "frank")
	tf.CreateTransfer("tx4", "grace", "heidi")

	require.NoError(t, tf.AddTransactions("tx1", "tx2", "tx3", "tx4"))
	require.Empty(t, tf.Instance.ProcessableTransactions(10))

	tf.PromoteToReady()

	require.Equal(t, tf.Transactions("tx3", "tx4"), tf.Instance.ProcessableTransactions(2))
	require.Equal(t, tf.Transactions("tx1", "tx2", "tx3", "tx4"), tf.Instance.ProcessableTransactions(10))
	require.Empty(t, tf.Instance.ProcessableTransactions(0))

	tf.RequireQueues(map[txpool.QueueName][]string{
		txpool.QueueReady: {"tx1", "tx2", "tx3", "tx4"},
	})
}

func TestIdentityInvariantAcrossEvents(t *testing.T, tf *TestFramework) {
	senders := []string{"alice", "bob", "carol", "dave"}
	recipients := []string{"", "erin", "frank", "alice"}

	aliases := make([]string, 0)
	for i := 0; i < 40; i++ {
		alias := fmt.Sprintf("tx%d", i)
		transactionType := txpool.TransactionTypeTransfer
		if i%5 == 0 {
			transactionType = txpool.TransactionTypeMultisignature
		}

		tf.CreateTransaction(alias, senders[i%len(senders)], recipients[(i/2)%len(recipients)], transactionType)
		aliases = append(aliases, alias)

		if i%7 == 0 {
			tf.MarkSigned(alias)
		}
	}

	for round := 0; round < 8; round++ {
		_ = tf.AddTransactions(aliases[round*5 : round*5+5]...)
		tf.RequireIdentityInvariant()

		switch round % 3 {
		case 0:
			tf.PromoteToReady()
		case 1:
			tf.Promote(txpool.QueueValidated, txpool.QueueVerified)
		default:
			tf.Promote(txpool.QueueValidated)
		}
		tf.RequireIdentityInvariant()

		require.NoError(t, tf.Instance.OnNewBlock(tf.Block(aliases[round*3], aliases[(round*7)%40])))
		tf.RequireIdentityInvariant()

		if round%2 == 1 {
			require.NoError(t, tf.Instance.OnDeleteBlock(tf.Block(aliases[round*3], aliases[(round*11+1)%40])))
			tf.RequireIdentityInvariant()
		}

		require.NoError(t, tf.Instance.OnRoundRollback(tf.SenderPublicKeys(senders[round%len(senders)])))
		tf.RequireIdentityInvariant()
	}
}

func TestQueueAccessWithUnknownQueueName(t *testing.T, tf *TestFramework) {
	_, err := tf.Instance.Transactions("unknown")
	require.ErrorIs(t, err, txpool.ErrUnknownQueue)

	_, err = tf.Instance.QueueSize("unknown")
	require.ErrorIs(t, err, txpool.ErrUnknownQueue)
}
