package txpool

import (
	"time"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/stringify"
	iotago "github.com/iotaledger/iota.go/v4"
)

// TransactionType discriminates the kind of a Transaction.
type TransactionType uint8

const (
	TransactionTypeTransfer TransactionType = iota
	TransactionTypeSecondSignature
	TransactionTypeDelegate
	TransactionTypeVote
	TransactionTypeMultisignature
	TransactionTypeDapp
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeTransfer:
		return "transfer"
	case TransactionTypeSecondSignature:
		return "secondSignature"
	case TransactionTypeDelegate:
		return "delegate"
	case TransactionTypeVote:
		return "vote"
	case TransactionTypeMultisignature:
		return "multisignature"
	case TransactionTypeDapp:
		return "dapp"
	default:
		return "unknown"
	}
}

// Transaction is the view of a submitted transaction that the pool operates on.
type Transaction struct {
	// ID is the unique identifier of the Transaction.
	ID iotago.TransactionID

	// SenderPublicKey is the public key of the account that signed the Transaction.
	SenderPublicKey ed25519.PublicKey

	// RecipientID is the account credited by the Transaction (nil if the transaction has no recipient).
	RecipientID *iotago.AccountID

	// Type is the kind of the Transaction.
	Type TransactionType

	// ReceivedAt is set by the pool when the Transaction is admitted.
	ReceivedAt time.Time
}

// HasRecipient returns true if the Transaction credits an account.
func (t *Transaction) HasRecipient() bool {
	return t.RecipientID != nil
}

func (t *Transaction) String() string {
	builder := stringify.NewStructBuilder("Transaction",
		stringify.NewStructField("ID", t.ID),
		stringify.NewStructField("SenderPublicKey", t.SenderPublicKey),
		stringify.NewStructField("Type", t.Type),
	)

	if t.RecipientID != nil {
		builder.AddField(stringify.NewStructField("RecipientID", *t.RecipientID))
	}

	return builder.String()
}

// Block is the part of an applied or reverted block that the pool needs to know about.
type Block struct {
	// Transactions are the transactions contained in the block.
	Transactions []*Transaction
}

// NewBlock creates a new Block from the given transactions.
func NewBlock(transactions ...*Transaction) *Block {
	return &Block{
		Transactions: transactions,
	}
}
