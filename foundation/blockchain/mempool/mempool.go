// Package mempool maintains the pool of transactions pending inclusion
// in a future block. No validation happens at insertion time, that is
// the block commit's job.
package mempool

import (
	"sync"

	"github.com/utxolabs/blockchain/foundation/blockchain/database"
)

// Mempool represents a cache of pending transactions keyed by their
// content hash identity.
type Mempool struct {
	pool map[string]database.Tx
	mu   sync.RWMutex
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]database.Tx),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool. Insertion is
// idempotent by transaction identity.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[tx.ID()] = tx

	return len(mp.pool)
}

// Delete removes the transaction with the specified id from the mempool.
func (mp *Mempool) Delete(txID string) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, txID)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
}

// PickBest returns up to howMany transactions for the next block. Pass
// -1 for all. The pool holds no ordering, the batch order handed to the
// block builder is whatever this returns.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if howMany == -1 || howMany > len(mp.pool) {
		howMany = len(mp.pool)
	}

	txs := make([]database.Tx, 0, howMany)
	for _, tx := range mp.pool {
		if len(txs) == howMany {
			break
		}
		txs = append(txs, tx)
	}

	return txs
}

// Copy returns the pending transactions currently in the pool.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.Tx, 0, len(mp.pool))
	for _, tx := range mp.pool {
		txs = append(txs, tx)
	}

	return txs
}
