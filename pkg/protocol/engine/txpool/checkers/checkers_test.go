package checkers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/checkers"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func randTransaction(transactionType txpool.TransactionType, withRecipient bool) *txpool.Transaction {
	transaction := &txpool.Transaction{
		ID:              tpkg.RandTransactionID(),
		SenderPublicKey: ed25519.PublicKey(tpkg.Rand32ByteArray()),
		Type:            transactionType,
	}

	if withRecipient {
		recipientID := tpkg.RandAccountID()
		transaction.RecipientID = &recipientID
	}

	return transaction
}

func TestCheckTransactionPropertyForValues(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, true)
	tx2 := randTransaction(txpool.TransactionTypeVote, true)
	tx3 := randTransaction(txpool.TransactionTypeVote, false)

	predicate := checkers.CheckTransactionPropertyForValues([]ed25519.PublicKey{tx1.SenderPublicKey, tx3.SenderPublicKey}, checkers.SenderPublicKey)
	require.True(t, predicate(tx1))
	require.False(t, predicate(tx2))
	require.True(t, predicate(tx3))

	emptyPredicate := checkers.CheckTransactionPropertyForValues([]ed25519.PublicKey{}, checkers.SenderPublicKey)
	require.False(t, emptyPredicate(tx1))
	require.False(t, emptyPredicate(tx2))

	nilPredicate := checkers.CheckTransactionPropertyForValues(nil, checkers.ID)
	require.False(t, nilPredicate(tx1))
}

func TestCheckTransactionForID(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, false)
	tx2 := randTransaction(txpool.TransactionTypeTransfer, false)

	predicate := checkers.CheckTransactionForID([]*txpool.Transaction{tx1})
	require.True(t, predicate(tx1))
	require.True(t, predicate(&txpool.Transaction{ID: tx1.ID}))
	require.False(t, predicate(tx2))
}

func TestCheckTransactionForSenderPublicKey(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, false)
	tx2 := randTransaction(txpool.TransactionTypeTransfer, false)
	sameSender := randTransaction(txpool.TransactionTypeDapp, false)
	sameSender.SenderPublicKey = tx1.SenderPublicKey

	predicate := checkers.CheckTransactionForSenderPublicKey([]*txpool.Transaction{tx1})
	require.True(t, predicate(sameSender))
	require.False(t, predicate(tx2))

	require.True(t, checkers.CheckSenderPublicKeys([]ed25519.PublicKey{tx2.SenderPublicKey})(tx2))
}

func TestCheckTransactionForRecipientID(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, true)
	tx2 := randTransaction(txpool.TransactionTypeTransfer, true)
	withoutRecipient := randTransaction(txpool.TransactionTypeVote, false)

	sameRecipient := randTransaction(txpool.TransactionTypeTransfer, false)
	recipientID := *tx1.RecipientID
	sameRecipient.RecipientID = &recipientID

	predicate := checkers.CheckTransactionForRecipientID([]*txpool.Transaction{tx1, withoutRecipient})
	require.True(t, predicate(tx1))
	require.True(t, predicate(sameRecipient))
	require.False(t, predicate(tx2))
	require.False(t, predicate(withoutRecipient))

	require.Empty(t, checkers.RecipientID.Values([]*txpool.Transaction{withoutRecipient}))
	require.False(t, checkers.CheckTransactionForRecipientID([]*txpool.Transaction{withoutRecipient})(&txpool.Transaction{RecipientID: &iotago.AccountID{}}))
}

func TestCheckTransactionForTypes(t *testing.T) {
	vote := randTransaction(txpool.TransactionTypeVote, false)
	delegate := randTransaction(txpool.TransactionTypeDelegate, false)
	transfer := randTransaction(txpool.TransactionTypeTransfer, true)

	predicate := checkers.CheckTransactionForTypes([]*txpool.Transaction{vote, delegate})
	require.True(t, predicate(randTransaction(txpool.TransactionTypeVote, true)))
	require.True(t, predicate(delegate))
	require.False(t, predicate(transfer))
}

func TestCheckTransactionForCriterion(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeMultisignature, true)
	tx2 := randTransaction(txpool.TransactionTypeTransfer, true)

	for _, criterion := range checkers.Criteria {
		predicate, err := checkers.CheckTransactionForCriterion(criterion, []*txpool.Transaction{tx1})
		require.NoError(t, err)
		require.True(t, predicate(tx1), "criterion %s", criterion)
		require.False(t, predicate(tx2), "criterion %s", criterion)
	}

	_, err := checkers.CheckTransactionForCriterion(checkers.Criterion(42), []*txpool.Transaction{tx1})
	require.ErrorIs(t, err, checkers.ErrUnknownCriterion)
}

func TestCheckTransactionForCriteria(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, true)
	sameSender := randTransaction(txpool.TransactionTypeVote, false)
	sameSender.SenderPublicKey = tx1.SenderPublicKey
	unrelated := randTransaction(txpool.TransactionTypeVote, false)

	predicate, err := checkers.CheckTransactionForCriteria([]checkers.Criterion{checkers.ByID, checkers.BySenderPublicKey}, []*txpool.Transaction{tx1})
	require.NoError(t, err)
	require.True(t, predicate(tx1))
	require.True(t, predicate(sameSender))
	require.False(t, predicate(unrelated))

	noCriteria, err := checkers.CheckTransactionForCriteria(nil, []*txpool.Transaction{tx1})
	require.NoError(t, err)
	require.False(t, noCriteria(tx1))
}

func TestParseCriterion(t *testing.T) {
	for _, criterion := range checkers.Criteria {
		parsed, err := checkers.ParseCriterion(criterion.String())
		require.NoError(t, err)
		require.Equal(t, criterion, parsed)
	}

	_, err := checkers.ParseCriterion("balance")
	require.ErrorIs(t, err, checkers.ErrUnknownCriterion)
}

func TestReturnTrueUntilLimit(t *testing.T) {
	tx := randTransaction(txpool.TransactionTypeTransfer, false)

	predicate := checkers.ReturnTrueUntilLimit(3)
	require.True(t, predicate(tx))
	require.True(t, predicate(nil))
	require.True(t, predicate(tx))
	require.False(t, predicate(tx))
	require.False(t, predicate(tx))

	require.False(t, checkers.ReturnTrueUntilLimit(0)(tx))

	// every call of ReturnTrueUntilLimit gets its own counter
	first, second := checkers.ReturnTrueUntilLimit(1), checkers.ReturnTrueUntilLimit(1)
	require.True(t, first(tx))
	require.True(t, second(tx))
	require.False(t, first(tx))
}

func TestAnyAndNot(t *testing.T) {
	tx1 := randTransaction(txpool.TransactionTypeTransfer, false)
	tx2 := randTransaction(txpool.TransactionTypeVote, false)

	isTx1 := checkers.CheckTransactionForID([]*txpool.Transaction{tx1})
	isVote := checkers.CheckTransactionForTypes([]*txpool.Transaction{tx2})

	require.True(t, checkers.Any(isTx1, isVote)(tx1))
	require.True(t, checkers.Any(isTx1, isVote)(tx2))
	require.False(t, checkers.Any()(tx1))

	require.False(t, checkers.Not(isTx1)(tx1))
	require.True(t, checkers.Not(isTx1)(tx2))
}
