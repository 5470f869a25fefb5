package txpoolv1

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/zyedidia/generic/cache"

	"github.com/iotaledger/hive.go/runtime/syncutils"
	iotago "github.com/iotaledger/iota.go/v4"
)

// confirmedTransactions remembers the ids of recently confirmed transactions and whether they had been verified
// before they were confirmed. Lookups reorder the LRU, so every access needs the exclusive lock.
type confirmedTransactions struct {
	cache *cache.Cache[iotago.TransactionID, bool]
	mutex syncutils.Mutex
}

func newConfirmedTransactions(maxSize int) *confirmedTransactions {
	return &confirmedTransactions{
		cache: cache.New[iotago.TransactionID, bool](maxSize),
	}
}

// Add remembers the id. A transaction that was verified once stays marked as verified.
func (c *confirmedTransactions) Add(id iotago.TransactionID, verified bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if wasVerified, exists := c.cache.Get(id); exists && wasVerified {
		verified = true
	}

	c.cache.Put(id, verified)
}

func (c *confirmedTransactions) Has(id iotago.TransactionID) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, exists := c.cache.Get(id)

	return exists
}

// WasVerified returns true if the confirmed transaction had reached the verified queue before.
func (c *confirmedTransactions) WasVerified(id iotago.TransactionID) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	verified, exists := c.cache.Get(id)

	return exists && verified
}

func (c *confirmedTransactions) Remove(id iotago.TransactionID) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Remove(id)
}

// rejectedTransactions remembers the reasons why transactions failed a stage of the pipeline.
type rejectedTransactions struct {
	cache *fastcache.Cache
}

func newRejectedTransactions(maxBytes int) *rejectedTransactions {
	return &rejectedTransactions{
		cache: fastcache.New(maxBytes),
	}
}

func (r *rejectedTransactions) Add(id iotago.TransactionID, reason error) {
	r.cache.Set(id[:], []byte(reason.Error()))
}

// Reason returns the reason why the transaction was rejected.
func (r *rejectedTransactions) Reason(id iotago.TransactionID) (reason string, exists bool) {
	if !r.cache.Has(id[:]) {
		return "", false
	}

	return string(r.cache.Get(nil, id[:])), true
}

func (r *rejectedTransactions) Remove(id iotago.TransactionID) {
	r.cache.Del(id[:])
}

func (r *rejectedTransactions) Reset() {
	r.cache.Reset()
}
