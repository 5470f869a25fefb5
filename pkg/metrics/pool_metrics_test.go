package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func TestPoolMetrics(t *testing.T) {
	events := txpool.NewEvents()
	poolMetrics := NewPoolMetrics(events)

	transactions := []*txpool.Transaction{
		{ID: tpkg.RandTransactionID()},
		{ID: tpkg.RandTransactionID()},
	}

	events.TransactionsAdded.Trigger(txpool.QueueReceived, transactions)
	events.TransactionsAdded.Trigger(txpool.QueueValidated, transactions)
	events.TransactionRejected.Trigger(transactions[0], ierrors.New("invalid"))
	events.TransactionsRemoved.Trigger(txpool.QueueReady, transactions[:1], txpool.RemovalReasonConfirmed)
	events.TransactionsRemoved.Trigger(txpool.QueueReceived, transactions, txpool.RemovalReasonPromoted)
	events.TransactionsRemoved.Trigger(txpool.QueuePending, transactions[1:], txpool.RemovalReasonExpired)
	events.TransactionsRemoved.Trigger(txpool.QueueReceived, transactions, txpool.RemovalReasonEvicted)
	events.TransactionsDemoted.Trigger(transactions)
	events.TransactionsRestored.Trigger(transactions[:1])

	require.EqualValues(t, 2, poolMetrics.Admitted.Load())
	require.EqualValues(t, 1, poolMetrics.Rejected.Load())
	require.EqualValues(t, 1, poolMetrics.Confirmed.Load())
	require.EqualValues(t, 1, poolMetrics.Expired.Load())
	require.EqualValues(t, 2, poolMetrics.Evicted.Load())
	require.EqualValues(t, 2, poolMetrics.Demoted.Load())
	require.EqualValues(t, 1, poolMetrics.Restored.Load())
}
