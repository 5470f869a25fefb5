package txpoolv1

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/ds"
	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/ds/types"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/iota-txpool/pkg/core/job"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/checkers"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/queue"
	iotago "github.com/iotaledger/iota.go/v4"
)

// TransactionPool is the default implementation of the txpool.TransactionPool.
type TransactionPool struct {
	events *txpool.Events

	// queues contains the five stages of the admission pipeline.
	queues map[txpool.QueueName]*queue.Queue

	// verifiedTransactions contains the ids of the tracked transactions that reached the verified queue.
	verifiedTransactions *shrinkingmap.ShrinkingMap[iotago.TransactionID, types.Empty]

	confirmedTransactions *confirmedTransactions

	rejectedTransactions *rejectedTransactions

	jobs []*job.Job[*TransactionPool]

	clock clock.Clock

	validateFunc           txpool.ValidateFunc
	verifyFunc             txpool.VerifyFunc
	processFunc            txpool.ProcessFunc
	readyForProcessingFunc txpool.ReadyForProcessingFunc

	isShutdown bool

	mutex syncutils.RWMutex

	optsMaxReceivedTransactions        int
	optsMaxReadyTransactions           int
	optsMaxPendingProcessable          int
	optsValidateBatchSize              int
	optsVerifyBatchSize                int
	optsValidateInterval               time.Duration
	optsVerifyInterval                 time.Duration
	optsProcessInterval                time.Duration
	optsExpireInterval                 time.Duration
	optsTransactionTTL                 time.Duration
	optsPendingTransactionTTL          time.Duration
	optsConfirmedTransactionsCacheSize int
	optsRejectedTransactionsCacheSize  int
	optsNewBlockDemotionCriteria       []checkers.Criterion

	log.Logger
}

// New creates a new TransactionPool.
func New(logger log.Logger, opts ...options.Option[TransactionPool]) *TransactionPool {
	return options.Apply(&TransactionPool{
		events:                 txpool.NewEvents(),
		queues:                 make(map[txpool.QueueName]*queue.Queue),
		verifiedTransactions:   shrinkingmap.New[iotago.TransactionID, types.Empty](),
		clock:                  clock.New(),
		validateFunc:           acceptValid,
		verifyFunc:             acceptVerified,
		processFunc:            acceptProcessable,
		readyForProcessingFunc: func(*txpool.Transaction) bool { return false },
		Logger:                 logger.NewChildLogger("TransactionPool"),

		optsMaxReceivedTransactions:        DefaultMaxReceivedTransactions,
		optsMaxReadyTransactions:           DefaultMaxReadyTransactions,
		optsMaxPendingProcessable:          DefaultMaxPendingProcessable,
		optsValidateBatchSize:              DefaultValidateBatchSize,
		optsVerifyBatchSize:                DefaultVerifyBatchSize,
		optsValidateInterval:               DefaultValidateInterval,
		optsVerifyInterval:                 DefaultVerifyInterval,
		optsProcessInterval:                DefaultProcessInterval,
		optsExpireInterval:                 DefaultExpireInterval,
		optsTransactionTTL:                 DefaultTransactionTTL,
		optsPendingTransactionTTL:          DefaultPendingTransactionTTL,
		optsConfirmedTransactionsCacheSize: DefaultConfirmedTransactionsCache,
		optsRejectedTransactionsCacheSize:  DefaultRejectedTransactionsCache,
		optsNewBlockDemotionCriteria:       []checkers.Criterion{checkers.BySenderPublicKey},
	}, opts, func(t *TransactionPool) {
		for _, queueName := range txpool.QueueNames {
			t.queues[queueName] = queue.New()
		}

		t.confirmedTransactions = newConfirmedTransactions(t.optsConfirmedTransactionsCacheSize)
		t.rejectedTransactions = newRejectedTransactions(t.optsRejectedTransactionsCacheSize)

		t.jobs = []*job.Job[*TransactionPool]{
			t.newJob((*TransactionPool).validateTransactions, t.optsValidateInterval),
			t.newJob((*TransactionPool).verifyTransactions, t.optsVerifyInterval),
			t.newJob((*TransactionPool).processTransactions, t.optsProcessInterval),
			t.newJob((*TransactionPool).expireTransactions, t.optsExpireInterval),
		}
	})
}

var _ txpool.TransactionPool = new(TransactionPool)

// Events returns the events of the TransactionPool.
func (t *TransactionPool) Events() *txpool.Events {
	return t.events
}

// AddTransaction admits a transaction into the received queue.
func (t *TransactionPool) AddTransaction(transaction *txpool.Transaction) error {
	_, err := t.AddTransactions([]*txpool.Transaction{transaction})

	return err
}

// AddTransactions admits the given transactions into the received queue. Transactions that can not be admitted are
// skipped and reported through the returned error and the TransactionRejected event.
func (t *TransactionPool) AddTransactions(transactions []*txpool.Transaction) (added []*txpool.Transaction, err error) {
	err = t.apply(func(b *batch) error {
		admitted := ds.NewSet[iotago.TransactionID]()
		added = make([]*txpool.Transaction, 0, len(transactions))

		var rejectionErrors []error
		for _, transaction := range transactions {
			if admissionErr := t.checkAdmission(transaction, admitted, len(added)); admissionErr != nil {
				rejectionErrors = append(rejectionErrors, admissionErr)

				if transaction != nil {
					b.notify(func() { t.events.TransactionRejected.Trigger(transaction, admissionErr) })
				}

				continue
			}

			transaction.ReceivedAt = t.clock.Now()
			admitted.Add(transaction.ID)
			added = append(added, transaction)
		}

		b.insert(txpool.QueueReceived, added)

		return ierrors.Join(rejectionErrors...)
	})

	return added, err
}

// RemoveTransactions removes the transactions with the given ids from whatever queue holds them.
func (t *TransactionPool) RemoveTransactions(ids ...iotago.TransactionID) (removed []*txpool.Transaction) {
	removedIDs := checkers.CheckTransactionPropertyForValues(ids, checkers.ID)

	if err := t.apply(func(b *batch) error {
		for _, queueName := range txpool.QueueNames {
			removed = append(removed, b.remove(queueName, removedIDs, txpool.RemovalReasonEvicted)...)
		}

		return nil
	}); err != nil {
		return nil
	}

	return removed
}

// OnNewBlock removes the transactions of an applied block from the received and validated queues and demotes the
// transactions of the pending, verified and ready queues that are part of the block or affected by it.
func (t *TransactionPool) OnNewBlock(block *txpool.Block) error {
	if block == nil {
		return ierrors.New("block must not be nil")
	}

	blockTransactions := lo.Filter(block.Transactions, isNotNil)
	confirmed := checkers.CheckTransactionForID(blockTransactions)
	affected, err := checkers.CheckTransactionForCriteria(t.optsNewBlockDemotionCriteria, blockTransactions)
	if err != nil {
		return ierrors.Wrap(err, "failed to create demotion checker")
	}

	return t.apply(func(b *batch) error {
		var removed []*txpool.Transaction
		for _, queueName := range txpool.UpstreamQueueNames {
			removed = append(removed, b.remove(queueName, confirmed, txpool.RemovalReasonConfirmed)...)
		}

		demoted := t.demote(b, checkers.Any(confirmed, affected))

		verified := make(map[iotago.TransactionID]bool, len(blockTransactions))
		for _, transaction := range blockTransactions {
			verified[transaction.ID] = t.verifiedTransactions.Has(transaction.ID)
		}

		b.onCommit(func() {
			for id, wasVerified := range verified {
				t.confirmedTransactions.Add(id, wasVerified)
			}
		})

		t.LogDebug("new block", "transactions", len(blockTransactions), "confirmed", len(removed), "demoted", len(demoted))

		return nil
	})
}

// OnDeleteBlock restores the transactions of a reverted block into the verified queue and demotes the transactions
// of the pending, verified and ready queues that credit an account of the block.
func (t *TransactionPool) OnDeleteBlock(block *txpool.Block) error {
	if block == nil {
		return ierrors.New("block must not be nil")
	}

	restored := lo.Filter(block.Transactions, isNotNil)
	copies := checkers.CheckTransactionForID(restored)
	affected := checkers.CheckTransactionForRecipientID(restored)

	return t.apply(func(b *batch) error {
		for _, queueName := range txpool.QueueNames {
			b.remove(queueName, copies, txpool.RemovalReasonRestored)
		}

		demoted := t.demote(b, affected)

		b.insert(txpool.QueueVerified, restored)
		b.onCommit(func() {
			now := t.clock.Now()
			for _, transaction := range restored {
				transaction.ReceivedAt = now
				t.confirmedTransactions.Remove(transaction.ID)
				t.rejectedTransactions.Remove(transaction.ID)
			}
		})
		b.notify(func() { t.events.TransactionsRestored.Trigger(restored) })

		t.LogDebug("deleted block", "restored", len(restored), "demoted", len(demoted))

		return nil
	})
}

// OnRoundRollback demotes the transactions of the pending, verified and ready queues that were sent by one of the
// given senders.
func (t *TransactionPool) OnRoundRollback(senderPublicKeys []ed25519.PublicKey) error {
	affected := checkers.CheckSenderPublicKeys(senderPublicKeys)

	return t.apply(func(b *batch) error {
		demoted := t.demote(b, affected)

		t.LogDebug("round rollback", "senders", len(senderPublicKeys), "demoted", len(demoted))

		return nil
	})
}

// ProcessableTransactions returns up to limit transactions from the tail of the ready queue.
func (t *TransactionPool) ProcessableTransactions(limit int) []*txpool.Transaction {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.queues[txpool.QueueReady].PeekUntil(checkers.ReturnTrueUntilLimit(limit))
}

// Exists returns true if a transaction with the given id is tracked by any queue.
func (t *TransactionPool) Exists(id iotago.TransactionID) bool {
	_, _, exists := t.Transaction(id)

	return exists
}

// Transaction returns the transaction with the given id and the name of the queue that tracks it.
func (t *TransactionPool) Transaction(id iotago.TransactionID) (transaction *txpool.Transaction, queueName txpool.QueueName, exists bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	for _, queueName = range txpool.QueueNames {
		if transaction, exists = t.queues[queueName].Get(id); exists {
			return transaction, queueName, true
		}
	}

	return nil, "", false
}

// RejectionReason returns the reason why the transaction with the given id was rejected recently.
func (t *TransactionPool) RejectionReason(id iotago.TransactionID) (reason string, rejected bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.rejectedTransactions.Reason(id)
}

// IsConfirmed returns true if the transaction with the given id was confirmed recently.
func (t *TransactionPool) IsConfirmed(id iotago.TransactionID) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.confirmedTransactions.Has(id)
}

// Transactions returns a copy of the transactions of the named queue.
func (t *TransactionPool) Transactions(queueName txpool.QueueName) ([]*txpool.Transaction, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	targetQueue, exists := t.queues[queueName]
	if !exists {
		return nil, ierrors.Wrapf(txpool.ErrUnknownQueue, "queue '%s'", queueName)
	}

	return targetQueue.Transactions(), nil
}

// QueueSize returns the number of transactions in the named queue.
func (t *TransactionPool) QueueSize(queueName txpool.QueueName) (int, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	targetQueue, exists := t.queues[queueName]
	if !exists {
		return 0, ierrors.Wrapf(txpool.ErrUnknownQueue, "queue '%s'", queueName)
	}

	return targetQueue.Size(), nil
}

// QueueSizes returns the number of transactions of every queue.
func (t *TransactionPool) QueueSizes() map[txpool.QueueName]int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	sizes := make(map[txpool.QueueName]int, len(t.queues))
	for queueName, targetQueue := range t.queues {
		sizes[queueName] = targetQueue.Size()
	}

	return sizes
}

// IsShutdown returns true if the TransactionPool was shut down and not started again.
func (t *TransactionPool) IsShutdown() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.isShutdown
}

// Start starts the jobs of the TransactionPool.
func (t *TransactionPool) Start() {
	t.mutex.Lock()
	t.isShutdown = false
	t.mutex.Unlock()

	for _, poolJob := range t.jobs {
		poolJob.Start()
	}

	t.LogDebug("started")
}

// Shutdown stops the jobs of the TransactionPool and rejects further admissions.
func (t *TransactionPool) Shutdown() {
	t.mutex.Lock()
	t.isShutdown = true
	t.mutex.Unlock()

	for _, poolJob := range t.jobs {
		poolJob.Stop()
	}

	t.LogDebug("stopped")
}

// apply plans a batch, validates it and applies it to the queues. The events of the batch are triggered after the
// lock was released. An error returned by the plan does not prevent the batch from being applied, an invalid batch
// is discarded as a whole.
func (t *TransactionPool) apply(plan func(b *batch) error) error {
	b, err := t.applyLocked(plan)
	if b != nil {
		b.trigger()
	}

	return err
}

func (t *TransactionPool) applyLocked(plan func(b *batch) error) (*batch, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	b := newBatch(t)
	planErr := plan(b)

	if err := b.validate(); err != nil {
		t.LogError("discarding batch", "err", err)

		return nil, err
	}

	b.commit()

	return b, planErr
}

// demote plans moving the transactions of the pending, verified and ready queues that satisfy the predicate back
// into the validated queue.
func (t *TransactionPool) demote(b *batch, predicate txpool.Predicate) []*txpool.Transaction {
	var demoted []*txpool.Transaction
	for _, queueName := range txpool.DownstreamQueueNames {
		demoted = append(demoted, b.remove(queueName, predicate, txpool.RemovalReasonDemoted)...)
	}

	if len(demoted) != 0 {
		b.insert(txpool.QueueValidated, demoted)
		b.notify(func() { t.events.TransactionsDemoted.Trigger(demoted) })
	}

	return demoted
}

// checkAdmission returns an error if the transaction can not be admitted into the received queue.
func (t *TransactionPool) checkAdmission(transaction *txpool.Transaction, admitted ds.Set[iotago.TransactionID], admittedCount int) error {
	switch {
	case transaction == nil:
		return ierrors.Wrap(txpool.ErrInvalidTransaction, "transaction must not be nil")
	case t.isShutdown:
		return ierrors.Wrapf(txpool.ErrTransactionPoolNotRunning, "failed to admit transaction %s", transaction.ID)
	case admitted.Has(transaction.ID):
		return ierrors.Wrapf(txpool.ErrTransactionExists, "transaction %s was submitted twice", transaction.ID)
	case t.confirmedTransactions.Has(transaction.ID):
		return ierrors.Wrapf(txpool.ErrTransactionConfirmed, "failed to admit transaction %s", transaction.ID)
	case t.queues[txpool.QueueReceived].Size()+admittedCount >= t.optsMaxReceivedTransactions:
		return ierrors.Wrapf(txpool.ErrReceivedQueueFull, "failed to admit transaction %s", transaction.ID)
	}

	for _, queueName := range txpool.QueueNames {
		if t.queues[queueName].Has(transaction.ID) {
			return ierrors.Wrapf(txpool.ErrTransactionExists, "transaction %s is part of the %s queue", transaction.ID, queueName)
		}
	}

	if reason, rejected := t.rejectedTransactions.Reason(transaction.ID); rejected {
		return ierrors.Wrapf(txpool.ErrTransactionRejected, "transaction %s was rejected: %s", transaction.ID, reason)
	}

	return nil
}

// reject plans the removal of transactions that failed a stage of the pipeline.
func (t *TransactionPool) reject(b *batch, transactions []*txpool.Transaction, reason error) {
	if len(transactions) == 0 {
		return
	}

	b.classify(transactions, txpool.RemovalReasonInvalid)
	b.onCommit(func() {
		for _, transaction := range transactions {
			t.rejectedTransactions.Add(transaction.ID, reason)
		}
	})

	for _, transaction := range transactions {
		b.notify(func() { t.events.TransactionRejected.Trigger(transaction, reason) })
	}
}

// markVerified remembers that the transaction reached the verified queue and returns true if it never did before,
// including before a confirmation that was reverted since.
func (t *TransactionPool) markVerified(id iotago.TransactionID) (firstTime bool) {
	_, created := t.verifiedTransactions.GetOrCreate(id, func() types.Empty { return types.Void })

	return created && !t.confirmedTransactions.WasVerified(id)
}

func (t *TransactionPool) forgetVerified(id iotago.TransactionID) {
	t.verifiedTransactions.Delete(id)
}

func isNotNil(transaction *txpool.Transaction) bool {
	return transaction != nil
}

func (t *TransactionPool) newJob(fn func(*TransactionPool), interval time.Duration) *job.Job[*TransactionPool] {
	return job.New(t, fn, interval, job.WithClock[*TransactionPool](t.clock), job.WithLogger[*TransactionPool](t.Logger))
}
