package checkers

import (
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/ds"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	iotago "github.com/iotaledger/iota.go/v4"
)

// ErrUnknownCriterion is returned when a criterion can not be resolved.
var ErrUnknownCriterion = ierrors.New("unknown criterion")

// Criterion is the closed set of transaction properties that checkers can compare.
type Criterion uint8

const (
	ByID Criterion = iota
	BySenderPublicKey
	ByRecipientID
	ByType
)

// Criteria contains all known criteria.
var Criteria = []Criterion{ByID, BySenderPublicKey, ByRecipientID, ByType}

func (c Criterion) String() string {
	switch c {
	case ByID:
		return "id"
	case BySenderPublicKey:
		return "senderPublicKey"
	case ByRecipientID:
		return "recipientID"
	case ByType:
		return "type"
	default:
		return "unknown"
	}
}

// ParseCriterion returns the Criterion with the given name.
func ParseCriterion(name string) (Criterion, error) {
	for _, criterion := range Criteria {
		if criterion.String() == name {
			return criterion, nil
		}
	}

	return 0, ierrors.Wrapf(ErrUnknownCriterion, "criterion '%s'", name)
}

// Property describes how the value of a Criterion is read from a transaction.
type Property[V comparable] struct {
	criterion Criterion
	value     func(transaction *txpool.Transaction) (value V, exists bool)
}

var (
	// ID reads the id of a transaction.
	ID = Property[iotago.TransactionID]{
		criterion: ByID,
		value: func(transaction *txpool.Transaction) (iotago.TransactionID, bool) {
			return transaction.ID, true
		},
	}

	// SenderPublicKey reads the public key of the sender of a transaction.
	SenderPublicKey = Property[ed25519.PublicKey]{
		criterion: BySenderPublicKey,
		value: func(transaction *txpool.Transaction) (ed25519.PublicKey, bool) {
			return transaction.SenderPublicKey, true
		},
	}

	// RecipientID reads the recipient of a transaction. Transactions without a recipient have no value.
	RecipientID = Property[iotago.AccountID]{
		criterion: ByRecipientID,
		value: func(transaction *txpool.Transaction) (iotago.AccountID, bool) {
			if !transaction.HasRecipient() {
				return iotago.AccountID{}, false
			}

			return *transaction.RecipientID, true
		},
	}

	// Type reads the type of a transaction.
	Type = Property[txpool.TransactionType]{
		criterion: ByType,
		value: func(transaction *txpool.Transaction) (txpool.TransactionType, bool) {
			return transaction.Type, true
		},
	}
)

// Criterion returns the Criterion that is described by the Property.
func (p Property[V]) Criterion() Criterion {
	return p.criterion
}

// Values extracts the values of the Property from the given transactions, skipping transactions without a value.
func (p Property[V]) Values(transactions []*txpool.Transaction) []V {
	values := make([]V, 0, len(transactions))
	for _, transaction := range transactions {
		if value, exists := p.value(transaction); exists {
			values = append(values, value)
		}
	}

	return values
}

// CheckTransactionPropertyForValues returns a predicate that is true iff the value of the property of a
// transaction is one of the given values.
func CheckTransactionPropertyForValues[V comparable](values []V, property Property[V]) txpool.Predicate {
	if len(values) == 0 {
		return func(*txpool.Transaction) bool { return false }
	}

	valueSet := ds.NewSet(values...)

	return func(transaction *txpool.Transaction) bool {
		value, exists := property.value(transaction)

		return exists && valueSet.Has(value)
	}
}

// CheckTransactionForID returns a predicate that matches transactions with the id of any of the given transactions.
func CheckTransactionForID(transactions []*txpool.Transaction) txpool.Predicate {
	return CheckTransactionPropertyForValues(ID.Values(transactions), ID)
}

// CheckTransactionForSenderPublicKey returns a predicate that matches transactions sent by any sender of the given
// transactions.
func CheckTransactionForSenderPublicKey(transactions []*txpool.Transaction) txpool.Predicate {
	return CheckTransactionPropertyForValues(SenderPublicKey.Values(transactions), SenderPublicKey)
}

// CheckTransactionForRecipientID returns a predicate that matches transactions credited to any recipient of the
// given transactions.
func CheckTransactionForRecipientID(transactions []*txpool.Transaction) txpool.Predicate {
	return CheckTransactionPropertyForValues(RecipientID.Values(transactions), RecipientID)
}

// CheckTransactionForTypes returns a predicate that matches transactions of any type of the given transactions.
func CheckTransactionForTypes(transactions []*txpool.Transaction) txpool.Predicate {
	return CheckTransactionPropertyForValues(Type.Values(transactions), Type)
}

// CheckSenderPublicKeys returns a predicate that matches transactions sent by any of the given keys.
func CheckSenderPublicKeys(senderPublicKeys []ed25519.PublicKey) txpool.Predicate {
	return CheckTransactionPropertyForValues(senderPublicKeys, SenderPublicKey)
}

// CheckTransactionForCriterion returns the checker of the given criterion over the given transactions.
func CheckTransactionForCriterion(criterion Criterion, transactions []*txpool.Transaction) (txpool.Predicate, error) {
	switch criterion {
	case ByID:
		return CheckTransactionForID(transactions), nil
	case BySenderPublicKey:
		return CheckTransactionForSenderPublicKey(transactions), nil
	case ByRecipientID:
		return CheckTransactionForRecipientID(transactions), nil
	case ByType:
		return CheckTransactionForTypes(transactions), nil
	default:
		return nil, ierrors.Wrapf(ErrUnknownCriterion, "criterion %d", criterion)
	}
}

// CheckTransactionForCriteria returns a predicate that matches transactions that satisfy any of the given criteria.
func CheckTransactionForCriteria(criteria []Criterion, transactions []*txpool.Transaction) (txpool.Predicate, error) {
	predicates := make([]txpool.Predicate, 0, len(criteria))
	for _, criterion := range criteria {
		predicate, err := CheckTransactionForCriterion(criterion, transactions)
		if err != nil {
			return nil, err
		}

		predicates = append(predicates, predicate)
	}

	return Any(predicates...), nil
}

// ReturnTrueUntilLimit returns a predicate that ignores its argument and is true for the first limit calls only.
//
// The returned predicate counts its calls and must therefore not be shared between unrelated operations.
func ReturnTrueUntilLimit(limit int) txpool.Predicate {
	var calls int

	return func(*txpool.Transaction) bool {
		if calls >= limit {
			return false
		}
		calls++

		return true
	}
}

// Any returns a predicate that is true if any of the given predicates is true.
func Any(predicates ...txpool.Predicate) txpool.Predicate {
	return func(transaction *txpool.Transaction) bool {
		for _, predicate := range predicates {
			if predicate(transaction) {
				return true
			}
		}

		return false
	}
}

// Not returns a predicate that negates the given predicate.
func Not(predicate txpool.Predicate) txpool.Predicate {
	return func(transaction *txpool.Transaction) bool {
		return !predicate(transaction)
	}
}
