package txpool

import (
	"github.com/iotaledger/hive.go/ierrors"
)

var (
	ErrTransactionExists         = ierrors.New("transaction exists already")
	ErrTransactionNotFound       = ierrors.New("transaction not found")
	ErrTransactionConfirmed      = ierrors.New("transaction was confirmed recently")
	ErrTransactionRejected       = ierrors.New("transaction was rejected recently")
	ErrReceivedQueueFull         = ierrors.New("received queue is full")
	ErrIdentityInvariantViolated = ierrors.New("transaction would be tracked by more than one queue")
	ErrUnknownQueue              = ierrors.New("unknown queue")
	ErrTransactionPoolNotRunning = ierrors.New("transaction pool is not running")
	ErrInvalidTransaction        = ierrors.New("invalid transaction")
)
