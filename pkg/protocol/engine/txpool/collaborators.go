package txpool

// ValidateFunc performs the static checks of transactions leaving the received queue.
type ValidateFunc func(transactions []*Transaction) (valid []*Transaction, invalid []*Transaction)

// VerifyFunc verifies validated transactions against the current account state. Multi-signature transactions
// that still miss signatures are returned as pending.
type VerifyFunc func(transactions []*Transaction) (verified []*Transaction, pending []*Transaction, invalid []*Transaction)

// ProcessFunc sequences verified transactions so that they can be forged.
type ProcessFunc func(transactions []*Transaction) (processable []*Transaction, unprocessable []*Transaction)

// ReadyForProcessingFunc returns true if a pending transaction collected all of its signatures.
type ReadyForProcessingFunc func(transaction *Transaction) bool

// Predicate decides whether a transaction is affected by an operation.
type Predicate func(transaction *Transaction) bool
