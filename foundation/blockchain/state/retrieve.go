package state

import (
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/genesis"
)

// TipBlock returns the block at the head of the canonical working branch.
func (s *State) TipBlock() database.Block {
	return s.db.TipBlock()
}

// TipHeight returns the height of the canonical working branch.
func (s *State) TipHeight() uint64 {
	return s.db.TipHeight()
}

// TipLedger returns an independent copy of the ledger set at the head of
// the canonical working branch, for use by block production logic.
func (s *State) TipLedger() database.LedgerSet {
	return s.db.TipLedger()
}

// Tips returns the current branch tips in priority order.
func (s *State) Tips() []database.TipInfo {
	return s.db.Tips()
}

// BlocksCount returns the number of retained block records.
func (s *State) BlocksCount() int {
	return s.db.BlocksCount()
}

// GetRecord returns a copy of the retained record for a block hash.
func (s *State) GetRecord(blockHash string) (database.BlockRecord, bool) {
	return s.db.GetRecord(blockHash)
}

// MempoolCount returns the number of pending transactions.
func (s *State) MempoolCount() int {
	return s.mempool.Count()
}

// Mempool returns the pending transactions currently in the pool.
func (s *State) Mempool() []database.Tx {
	return s.mempool.Copy()
}

// OwnerUTXOs returns the unspent outputs owned by the specified public
// key on the canonical working branch.
func (s *State) OwnerUTXOs(ownerID string) database.LedgerSet {
	return s.db.TipLedger().OwnerOutputs(ownerID)
}

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}
