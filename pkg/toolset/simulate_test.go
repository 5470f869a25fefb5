package toolset

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota-txpool/pkg/utils"
)

func TestSimulationSettings_Collaborators(t *testing.T) {
	settings := &simulationSettings{invalidRatio: 0.5, multisigRatio: 0}

	transactions := make([]*txpool.Transaction, 0)
	for range 50 {
		transactions = append(transactions, utils.RandTransaction(utils.RandPublicKey()))
	}

	valid, invalid := settings.validate(transactions)
	require.Len(t, append(valid, invalid...), len(transactions))
	for _, transaction := range invalid {
		require.Less(t, transaction.ID[0], byte(128))
	}

	verified, pending, rejected := settings.verify(valid)
	require.Empty(t, rejected)

	// transactions of applied blocks fail the verification until the block is reverted
	block := txpool.NewBlock(valid[0])
	settings.setApplied(block, true)
	_, _, rejected = settings.verify(valid[:1])
	require.Equal(t, valid[:1], rejected)

	settings.setApplied(block, false)
	_, _, rejected = settings.verify(valid[:1])
	require.Empty(t, rejected)
	for _, transaction := range pending {
		require.Equal(t, txpool.TransactionTypeMultisignature, transaction.Type)
	}
	for _, transaction := range verified {
		require.NotEqual(t, txpool.TransactionTypeMultisignature, transaction.Type)
	}
}

func TestRunSimulation(t *testing.T) {
	settings := &simulationSettings{
		duration:         500 * time.Millisecond,
		submissionRate:   500,
		blockInterval:    50 * time.Millisecond,
		reportInterval:   100 * time.Millisecond,
		senders:          5,
		processableLimit: 10,
		invalidRatio:     0.1,
		revertRatio:      0.2,
		multisigRatio:    0.1,
	}

	simulationClock := clock.New()
	transactionPool := txpoolv1.New(log.NewLogger(),
		txpoolv1.WithClock(simulationClock),
		txpoolv1.WithJobIntervals(5*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond, time.Second),
		txpoolv1.WithValidateFunc(settings.validate),
		txpoolv1.WithVerifyFunc(settings.verify),
	)

	result := runSimulation(log.NewLogger(), simulationClock, transactionPool, settings)

	require.Positive(t, result.Submitted)
	require.LessOrEqual(t, result.Admitted, result.Submitted)
	require.Positive(t, result.Blocks)
	require.Len(t, result.QueueSizes, len(txpool.QueueNames))
}
