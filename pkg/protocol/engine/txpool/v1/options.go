package txpoolv1

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/checkers"
)

const (
	DefaultMaxReceivedTransactions    = 1000
	DefaultMaxReadyTransactions       = 25
	DefaultMaxPendingProcessable      = 5
	DefaultValidateBatchSize          = 100
	DefaultVerifyBatchSize            = 100
	DefaultValidateInterval           = 30 * time.Millisecond
	DefaultVerifyInterval             = 100 * time.Millisecond
	DefaultProcessInterval            = 100 * time.Millisecond
	DefaultExpireInterval             = 30 * time.Second
	DefaultTransactionTTL             = 3 * time.Hour
	DefaultPendingTransactionTTL      = 8 * time.Hour
	DefaultConfirmedTransactionsCache = 10000
	DefaultRejectedTransactionsCache  = 32 * 1024 * 1024
)

// WithMaxReceivedTransactions sets the capacity of the received queue.
func WithMaxReceivedTransactions(maxReceivedTransactions int) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsMaxReceivedTransactions = maxReceivedTransactions
	}
}

// WithMaxReadyTransactions sets the number of transactions that the process job keeps in the ready queue.
func WithMaxReadyTransactions(maxReadyTransactions int) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsMaxReadyTransactions = maxReadyTransactions
	}
}

// WithMaxPendingProcessable sets the number of ready-for-processing pending transactions that are processed per run.
func WithMaxPendingProcessable(maxPendingProcessable int) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsMaxPendingProcessable = maxPendingProcessable
	}
}

// WithBatchLimits sets the number of transactions that the validate and the verify job handle per run.
func WithBatchLimits(validateBatchSize int, verifyBatchSize int) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsValidateBatchSize = validateBatchSize
		t.optsVerifyBatchSize = verifyBatchSize
	}
}

// WithJobIntervals sets the intervals of the promotion and expiry jobs.
func WithJobIntervals(validateInterval, verifyInterval, processInterval, expireInterval time.Duration) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsValidateInterval = validateInterval
		t.optsVerifyInterval = verifyInterval
		t.optsProcessInterval = processInterval
		t.optsExpireInterval = expireInterval
	}
}

// WithTransactionTTL sets the time after which transactions expire.
func WithTransactionTTL(ttl time.Duration) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsTransactionTTL = ttl
	}
}

// WithPendingTransactionTTL sets the time after which transactions of the pending queue expire.
func WithPendingTransactionTTL(ttl time.Duration) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsPendingTransactionTTL = ttl
	}
}

// WithCacheSizes sets the number of remembered confirmed transactions and the size in bytes of the cache of
// rejected transactions.
func WithCacheSizes(confirmedTransactions int, rejectedTransactionsBytes int) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsConfirmedTransactionsCacheSize = confirmedTransactions
		t.optsRejectedTransactionsCacheSize = rejectedTransactionsBytes
	}
}

// WithNewBlockDemotionCriteria sets the criteria that select the transactions of the pending, verified and ready
// queues that need to be verified again after a block was applied.
func WithNewBlockDemotionCriteria(criteria ...checkers.Criterion) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.optsNewBlockDemotionCriteria = criteria
	}
}

// WithClock sets the clock that drives the jobs and timestamps admitted transactions.
func WithClock(clock clock.Clock) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.clock = clock
	}
}

// WithValidateFunc sets the collaborator that promotes received transactions.
func WithValidateFunc(validateFunc txpool.ValidateFunc) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.validateFunc = validateFunc
	}
}

// WithVerifyFunc sets the collaborator that promotes validated transactions.
func WithVerifyFunc(verifyFunc txpool.VerifyFunc) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.verifyFunc = verifyFunc
	}
}

// WithProcessFunc sets the collaborator that promotes verified transactions.
func WithProcessFunc(processFunc txpool.ProcessFunc) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.processFunc = processFunc
	}
}

// WithReadyForProcessingFunc sets the collaborator that decides whether a pending transaction can be processed.
func WithReadyForProcessingFunc(readyForProcessingFunc txpool.ReadyForProcessingFunc) options.Option[TransactionPool] {
	return func(t *TransactionPool) {
		t.readyForProcessingFunc = readyForProcessingFunc
	}
}
