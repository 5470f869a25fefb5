package txpool

import (
	"time"

	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota.go/v4/hexutil"
)

// QueueSizesResponse defines the response of a GET queues REST API call.
type QueueSizesResponse struct {
	// The number of transactions per queue.
	Sizes map[txpool.QueueName]int `json:"sizes"`
}

// QueueResponse defines the response of a GET queue REST API call.
type QueueResponse struct {
	// The name of the queue.
	Name txpool.QueueName `json:"name"`
	// The number of transactions in the queue.
	Size int `json:"size"`
	// The hex encoded ids of the transactions in queue order.
	TransactionIDs []string `json:"transactionIds"`
}

// TransactionResponse defines the response of a GET transaction REST API call.
type TransactionResponse struct {
	// The hex encoded transaction id.
	TransactionID string `json:"transactionId"`
	// The queue that tracks the transaction, if any.
	Queue txpool.QueueName `json:"queue,omitempty"`
	// The type of the transaction.
	Type string `json:"type,omitempty"`
	// The hex encoded public key of the sender.
	SenderPublicKey string `json:"senderPublicKey,omitempty"`
	// The hex encoded recipient account id.
	RecipientID string `json:"recipientId,omitempty"`
	// The time the transaction was admitted.
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
	// Whether the transaction was recently included in an applied block.
	Confirmed bool `json:"confirmed,omitempty"`
	// The reason why the transaction was recently rejected.
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// TransactionsResponse defines the response of a GET processable REST API call.
type TransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
}

// PoolMetricsResponse defines the response of a GET metrics REST API call.
type PoolMetricsResponse struct {
	Admitted  uint64 `json:"admitted"`
	Rejected  uint64 `json:"rejected"`
	Confirmed uint64 `json:"confirmed"`
	Demoted   uint64 `json:"demoted"`
	Restored  uint64 `json:"restored"`
	Expired   uint64 `json:"expired"`
	Evicted   uint64 `json:"evicted"`
}

func newTransactionResponse(transaction *txpool.Transaction, queueName txpool.QueueName) *TransactionResponse {
	receivedAt := transaction.ReceivedAt

	resp := &TransactionResponse{
		TransactionID:   transaction.ID.ToHex(),
		Queue:           queueName,
		Type:            transaction.Type.String(),
		SenderPublicKey: hexutil.EncodeHex(transaction.SenderPublicKey[:]),
		ReceivedAt:      &receivedAt,
	}

	if transaction.HasRecipient() {
		resp.RecipientID = transaction.RecipientID.ToHex()
	}

	return resp
}
