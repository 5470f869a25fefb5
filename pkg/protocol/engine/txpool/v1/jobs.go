package txpoolv1

import (
	"github.com/iotaledger/hive.go/ds"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

// validateTransactions promotes a batch of received transactions into the validated queue.
func (t *TransactionPool) validateTransactions() {
	t.runJob("validate", func(b *batch) error {
		candidates := b.drain(txpool.QueueReceived, t.optsValidateBatchSize, txpool.RemovalReasonPromoted)
		if len(candidates) == 0 {
			return nil
		}

		valid, invalid := t.validateFunc(candidates)

		b.insert(txpool.QueueValidated, valid)
		t.reject(b, invalid, ierrors.Wrap(txpool.ErrInvalidTransaction, "validation failed"))
		t.requeue(b, txpool.QueueReceived, candidates, valid, invalid)

		return nil
	})
}

// verifyTransactions promotes a batch of validated transactions into the verified or the pending queue.
func (t *TransactionPool) verifyTransactions() {
	t.runJob("verify", func(b *batch) error {
		candidates := b.drain(txpool.QueueValidated, t.optsVerifyBatchSize, txpool.RemovalReasonPromoted)
		if len(candidates) == 0 {
			return nil
		}

		verified, pending, invalid := t.verifyFunc(candidates)

		b.insert(txpool.QueuePending, pending)
		b.insert(txpool.QueueVerified, verified)
		t.reject(b, invalid, ierrors.Wrap(txpool.ErrInvalidTransaction, "verification failed"))
		t.requeue(b, txpool.QueueValidated, candidates, verified, pending, invalid)

		return nil
	})
}

// processTransactions fills the ready queue with verified transactions and pending transactions that collected all
// of their signatures.
func (t *TransactionPool) processTransactions() {
	t.runJob("process", func(b *batch) error {
		capacity := t.optsMaxReadyTransactions - t.queues[txpool.QueueReady].Size()
		if capacity <= 0 {
			return nil
		}

		pendingLimit := min(capacity, t.optsMaxPendingProcessable)

		var pendingCount int
		pendingCandidates := b.remove(txpool.QueuePending, func(transaction *txpool.Transaction) bool {
			if pendingCount >= pendingLimit || !t.readyForProcessingFunc(transaction) {
				return false
			}
			pendingCount++

			return true
		}, txpool.RemovalReasonPromoted)

		verifiedCandidates := b.drain(txpool.QueueVerified, capacity-len(pendingCandidates), txpool.RemovalReasonPromoted)

		candidates := make([]*txpool.Transaction, 0, len(pendingCandidates)+len(verifiedCandidates))
		candidates = append(candidates, pendingCandidates...)
		candidates = append(candidates, verifiedCandidates...)
		if len(candidates) == 0 {
			return nil
		}

		processable, unprocessable := t.processFunc(candidates)

		b.insert(txpool.QueueReady, processable)
		t.reject(b, unprocessable, ierrors.Wrap(txpool.ErrInvalidTransaction, "processing failed"))
		t.requeue(b, txpool.QueuePending, pendingCandidates, processable, unprocessable)
		t.requeue(b, txpool.QueueVerified, verifiedCandidates, processable, unprocessable)

		return nil
	})
}

// expireTransactions removes the transactions that stayed in the pool for longer than their time to live.
func (t *TransactionPool) expireTransactions() {
	t.runJob("expire", func(b *batch) error {
		now := t.clock.Now()

		for _, queueName := range txpool.QueueNames {
			ttl := t.optsTransactionTTL
			if queueName == txpool.QueuePending {
				ttl = t.optsPendingTransactionTTL
			}

			b.remove(queueName, func(transaction *txpool.Transaction) bool {
				return !now.Before(transaction.ReceivedAt.Add(ttl))
			}, txpool.RemovalReasonExpired)
		}

		return nil
	})
}

// runJob applies the batch of a job and logs a failure.
func (t *TransactionPool) runJob(name string, plan func(b *batch) error) {
	if err := t.apply(plan); err != nil {
		t.LogError("job failed", "job", name, "err", err)
	}
}

// requeue plans putting the candidates that were not classified by a collaborator back into their queue.
func (t *TransactionPool) requeue(b *batch, queueName txpool.QueueName, candidates []*txpool.Transaction, classified ...[]*txpool.Transaction) {
	classifiedSet := ds.NewSet[*txpool.Transaction]()
	for _, transactions := range classified {
		for _, transaction := range transactions {
			classifiedSet.Add(transaction)
		}
	}

	unclassified := make([]*txpool.Transaction, 0)
	for _, candidate := range candidates {
		if !classifiedSet.Has(candidate) {
			unclassified = append(unclassified, candidate)
		}
	}

	if len(unclassified) != 0 {
		b.classify(unclassified, txpool.RemovalReasonRestored)
		b.insert(queueName, unclassified)
	}
}

func acceptValid(transactions []*txpool.Transaction) (valid []*txpool.Transaction, invalid []*txpool.Transaction) {
	return transactions, nil
}

func acceptVerified(transactions []*txpool.Transaction) (verified []*txpool.Transaction, pending []*txpool.Transaction, invalid []*txpool.Transaction) {
	return transactions, nil, nil
}

func acceptProcessable(transactions []*txpool.Transaction) (processable []*txpool.Transaction, unprocessable []*txpool.Transaction) {
	return transactions, nil
}
