package state

import (
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction into the pending pool. No
// validation happens here, the transaction proves itself when a block
// carrying it is committed. Insertion is idempotent by identity.
func (s *State) SubmitTransaction(tx database.Tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Upsert(tx)

	s.evHandler("state: SubmitTransaction: tx[%s]: mempool[%d]", tx.ID(), n)

	if s.Worker != nil {
		s.Worker.SignalBlockAssembly()
	}
}
