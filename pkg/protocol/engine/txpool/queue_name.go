package txpool

import (
	"github.com/iotaledger/hive.go/ierrors"
)

// QueueName identifies one of the stages of the admission pipeline.
type QueueName string

const (
	// QueueReceived contains transactions that were just submitted and not checked yet.
	QueueReceived QueueName = "received"
	// QueueValidated contains transactions that passed the static checks and await verification.
	QueueValidated QueueName = "validated"
	// QueuePending contains multi-signature transactions that await additional signatures.
	QueuePending QueueName = "pending"
	// QueueVerified contains transactions that were verified against the current account state.
	QueueVerified QueueName = "verified"
	// QueueReady contains verified and sequenced transactions that can be forged.
	QueueReady QueueName = "ready"
)

// QueueNames lists the queues of the pipeline in increasing order of trust.
var QueueNames = []QueueName{QueueReceived, QueueValidated, QueuePending, QueueVerified, QueueReady}

// UpstreamQueueNames lists the queues whose transactions were not verified against an account state yet.
var UpstreamQueueNames = []QueueName{QueueReceived, QueueValidated}

// DownstreamQueueNames lists the queues whose transactions were verified against an account state.
var DownstreamQueueNames = []QueueName{QueuePending, QueueVerified, QueueReady}

// ParseQueueName returns the QueueName with the given name.
func ParseQueueName(name string) (QueueName, error) {
	for _, queueName := range QueueNames {
		if string(queueName) == name {
			return queueName, nil
		}
	}

	return "", ierrors.Wrapf(ErrUnknownQueue, "queue '%s'", name)
}

func (q QueueName) String() string {
	return string(q)
}
