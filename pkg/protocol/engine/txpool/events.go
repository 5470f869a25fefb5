package txpool

import (
	"github.com/iotaledger/hive.go/runtime/event"
)

type Events struct {
	// TransactionsAdded is triggered when transactions were enqueued into a queue.
	TransactionsAdded *event.Event2[QueueName, []*Transaction]

	// TransactionsRemoved is triggered when transactions left a queue.
	TransactionsRemoved *event.Event3[QueueName, []*Transaction, RemovalReason]

	// TransactionRejected is triggered when a submitted transaction was not admitted.
	TransactionRejected *event.Event2[*Transaction, error]

	// TransactionVerifiedOnce is triggered the first time a transaction reaches the verified queue.
	TransactionVerifiedOnce *event.Event1[*Transaction]

	// TransactionsDemoted is triggered when transactions were moved back to the validated queue.
	TransactionsDemoted *event.Event1[[]*Transaction]

	// TransactionsRestored is triggered when the transactions of a reverted block re-entered the pool.
	TransactionsRestored *event.Event1[[]*Transaction]

	event.Group[Events, *Events]
}

var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		TransactionsAdded:       event.New2[QueueName, []*Transaction](),
		TransactionsRemoved:     event.New3[QueueName, []*Transaction, RemovalReason](),
		TransactionRejected:     event.New2[*Transaction, error](),
		TransactionVerifiedOnce: event.New1[*Transaction](),
		TransactionsDemoted:     event.New1[[]*Transaction](),
		TransactionsRestored:    event.New1[[]*Transaction](),
	}
})

// RemovalReason describes why transactions left a queue.
type RemovalReason uint8

const (
	// RemovalReasonPromoted is used when transactions moved on to a more trusted queue.
	RemovalReasonPromoted RemovalReason = iota
	// RemovalReasonConfirmed is used when transactions were included in an applied block.
	RemovalReasonConfirmed
	// RemovalReasonDemoted is used when transactions need to be verified again.
	RemovalReasonDemoted
	// RemovalReasonRestored is used when a copy of a reverted block's transaction was replaced.
	RemovalReasonRestored
	// RemovalReasonInvalid is used when transactions failed a stage of the pipeline.
	RemovalReasonInvalid
	// RemovalReasonExpired is used when transactions stayed in the pool for too long.
	RemovalReasonExpired
	// RemovalReasonEvicted is used when transactions were removed explicitly.
	RemovalReasonEvicted
)

func (r RemovalReason) String() string {
	switch r {
	case RemovalReasonPromoted:
		return "promoted"
	case RemovalReasonConfirmed:
		return "confirmed"
	case RemovalReasonDemoted:
		return "demoted"
	case RemovalReasonRestored:
		return "restored"
	case RemovalReasonInvalid:
		return "invalid"
	case RemovalReasonExpired:
		return "expired"
	case RemovalReasonEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// IsFinal returns true if transactions that are removed for this reason leave the pool for good.
func (r RemovalReason) IsFinal() bool {
	switch r {
	case RemovalReasonConfirmed, RemovalReasonInvalid, RemovalReasonExpired, RemovalReasonEvicted:
		return true
	default:
		return false
	}
}
