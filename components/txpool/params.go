package txpool

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersTxPool contains the definition of the parameters used by the transaction pool.
type ParametersTxPool struct {
	Limits struct {
		// MaxReceivedTransactions defines the capacity of the received queue.
		MaxReceivedTransactions int `default:"1000" usage:"the maximum number of transactions in the received queue"`
		// MaxReadyTransactions defines the capacity of the ready queue.
		MaxReadyTransactions int `default:"25" usage:"the maximum number of transactions in the ready queue"`
		// MaxPendingProcessable defines how many pending transactions may be processed per run.
		MaxPendingProcessable int `default:"5" usage:"the maximum number of pending transactions that are processed per run"`
		// ValidateBatchSize defines how many received transactions are validated per run.
		ValidateBatchSize int `default:"100" usage:"the number of received transactions that are validated per run"`
		// VerifyBatchSize defines how many validated transactions are verified per run.
		VerifyBatchSize int `default:"100" usage:"the number of validated transactions that are verified per run"`
	}

	Intervals struct {
		Validate time.Duration `default:"30ms" usage:"the interval of the validation job"`
		Verify   time.Duration `default:"100ms" usage:"the interval of the verification job"`
		Process  time.Duration `default:"100ms" usage:"the interval of the processing job"`
		Expire   time.Duration `default:"30s" usage:"the interval of the expiry job"`
	}

	// TransactionTTL defines how long a transaction may stay in the pool.
	TransactionTTL time.Duration `default:"3h" usage:"how long a transaction may stay in the pool"`
	// PendingTransactionTTL defines how long a transaction may wait for its signatures.
	PendingTransactionTTL time.Duration `default:"8h" usage:"how long a transaction may stay in the pending queue"`

	Caches struct {
		// ConfirmedTransactions defines how many confirmed transaction ids are remembered.
		ConfirmedTransactions int `default:"10000" usage:"the number of confirmed transaction ids that are remembered"`
		// RejectedTransactionsSize defines the memory budget of the rejected transactions cache.
		RejectedTransactionsSize string `default:"32MB" usage:"the size of the cache that remembers rejected transactions"`
	}

	// DemotionCriteria defines the properties of applied transactions that demote matching verified transactions.
	DemotionCriteria []string `usage:"the properties of applied transactions that demote matching verified transactions (id, senderPublicKey, recipientID, type)"`
}

// ParamsTxPool contains the configuration parameters of the transaction pool.
var ParamsTxPool = &ParametersTxPool{
	DemotionCriteria: []string{"senderPublicKey"},
}

var params = &app.ComponentParams{
	Params: map[string]any{
		"txPool": ParamsTxPool,
	},
}
