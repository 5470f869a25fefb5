package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	iotago "github.com/iotaledger/iota.go/v4"
)

func RandomRead(p []byte) (n int, err error) {
	return rand.Read(p)
}

func RandomIntn(n int) int {
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(result.Int64())
}

// RandomChance returns true with the given probability.
func RandomChance(probability float64) bool {
	const precision = 1_000_000

	return RandomIntn(precision) < int(probability*precision)
}

// RandBytes returns length amount random bytes.
func RandBytes(length int) []byte {
	b := make([]byte, length)
	if _, err := RandomRead(b); err != nil {
		panic(err)
	}

	return b
}

func RandTransactionID() iotago.TransactionID {
	transactionID := iotago.TransactionID{}
	copy(transactionID[:], RandBytes(iotago.TransactionIDLength))

	return transactionID
}

func RandAccountID() iotago.AccountID {
	accountID := iotago.AccountID{}
	copy(accountID[:], RandBytes(iotago.AccountIDLength))

	return accountID
}

func RandPublicKey() ed25519.PublicKey {
	publicKey := ed25519.PublicKey{}
	copy(publicKey[:], RandBytes(len(publicKey)))

	return publicKey
}

func RandTransactionType() txpool.TransactionType {
	return txpool.TransactionType(RandomIntn(int(txpool.TransactionTypeDapp) + 1))
}

// RandTransaction returns a transaction of a random type that is signed by the given sender.
// Only transfers and votes credit a recipient.
func RandTransaction(senderPublicKey ed25519.PublicKey) *txpool.Transaction {
	transaction := &txpool.Transaction{
		ID:              RandTransactionID(),
		SenderPublicKey: senderPublicKey,
		Type:            RandTransactionType(),
	}

	if transaction.Type == txpool.TransactionTypeTransfer || transaction.Type == txpool.TransactionTypeVote {
		recipientID := RandAccountID()
		transaction.RecipientID = &recipientID
	}

	return transaction
}
