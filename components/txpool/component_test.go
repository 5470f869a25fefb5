package txpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/checkers"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
)

func setupValidParams(t *testing.T) {
	original := *ParamsTxPool
	t.Cleanup(func() { *ParamsTxPool = original })

	ParamsTxPool.Limits.MaxReceivedTransactions = txpoolv1.DefaultMaxReceivedTransactions
	ParamsTxPool.Limits.MaxReadyTransactions = txpoolv1.DefaultMaxReadyTransactions
	ParamsTxPool.Limits.MaxPendingProcessable = txpoolv1.DefaultMaxPendingProcessable
	ParamsTxPool.Limits.ValidateBatchSize = txpoolv1.DefaultValidateBatchSize
	ParamsTxPool.Limits.VerifyBatchSize = txpoolv1.DefaultVerifyBatchSize
	ParamsTxPool.Intervals.Validate = txpoolv1.DefaultValidateInterval
	ParamsTxPool.Intervals.Verify = txpoolv1.DefaultVerifyInterval
	ParamsTxPool.Intervals.Process = txpoolv1.DefaultProcessInterval
	ParamsTxPool.Intervals.Expire = txpoolv1.DefaultExpireInterval
	ParamsTxPool.TransactionTTL = txpoolv1.DefaultTransactionTTL
	ParamsTxPool.PendingTransactionTTL = txpoolv1.DefaultPendingTransactionTTL
	ParamsTxPool.Caches.ConfirmedTransactions = txpoolv1.DefaultConfirmedTransactionsCache
	ParamsTxPool.Caches.RejectedTransactionsSize = "1MB"
	ParamsTxPool.DemotionCriteria = []string{"senderPublicKey"}
}

func TestPoolOptions(t *testing.T) {
	setupValidParams(t)

	ParamsTxPool.DemotionCriteria = []string{"senderPublicKey", "recipientID"}
	opts, err := poolOptions()
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	ParamsTxPool.DemotionCriteria = []string{"unknown"}
	_, err = poolOptions()
	require.ErrorIs(t, err, checkers.ErrUnknownCriterion)

	ParamsTxPool.DemotionCriteria = nil
	ParamsTxPool.Caches.RejectedTransactionsSize = "many"
	_, err = poolOptions()
	require.Error(t, err)
}

func TestPoolOptions_RejectsNonPositiveValues(t *testing.T) {
	setupValidParams(t)

	ParamsTxPool.Intervals.Verify = 0
	_, err := poolOptions()
	require.ErrorIs(t, err, ErrInvalidParameter)

	ParamsTxPool.Intervals.Verify = time.Second
	ParamsTxPool.Caches.ConfirmedTransactions = 0
	_, err = poolOptions()
	require.ErrorIs(t, err, ErrInvalidParameter)

	ParamsTxPool.Caches.ConfirmedTransactions = 10
	ParamsTxPool.Caches.RejectedTransactionsSize = "0B"
	_, err = poolOptions()
	require.ErrorIs(t, err, ErrInvalidParameter)

	ParamsTxPool.Caches.RejectedTransactionsSize = "1MB"
	opts, err := poolOptions()
	require.NoError(t, err)

	require.NotPanics(t, func() {
		transactionPool := txpoolv1.New(log.NewLogger(), opts...)
		transactionPool.Start()
		transactionPool.Shutdown()
	})
}
