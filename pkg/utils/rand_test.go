package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

func TestRandTransaction(t *testing.T) {
	senderPublicKey := RandPublicKey()

	for range 100 {
		transaction := RandTransaction(senderPublicKey)

		require.Equal(t, senderPublicKey, transaction.SenderPublicKey)
		require.LessOrEqual(t, transaction.Type, txpool.TransactionTypeDapp)
		require.Equal(t, transaction.Type == txpool.TransactionTypeTransfer || transaction.Type == txpool.TransactionTypeVote, transaction.HasRecipient())
	}

	require.NotEqual(t, RandTransactionID(), RandTransactionID())
}

func TestRandomChance(t *testing.T) {
	for range 100 {
		require.False(t, RandomChance(0))
		require.True(t, RandomChance(1))
	}
}
