package state

import (
	"errors"
	"time"

	"github.com/utxolabs/blockchain/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no pending transactions.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ErrNoCommittableTrans is returned when none of the pending
// transactions can commit against the canonical tip's ledger.
var ErrNoCommittableTrans = errors.New("no committable transactions in mempool")

// =============================================================================

// AddBlock takes a block received from a peer or assembled locally,
// validates it against its parent branch and if that passes commits it
// to the index. Acceptance is all or nothing per block. The boolean is
// the whole external contract, the rejection reason only goes to the
// event handler.
func (s *State) AddBlock(block database.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.acceptBlock(block)
}

// AssembleBlock builds a candidate block from the pending pool over the
// canonical tip and submits it through the same admission path a peer
// block would take.
func (s *State) AssembleBlock() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: AssembleBlock: check mempool count")

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// Pre-run the candidates against the tip's ledger and keep the
	// subset that commits. A block carrying even one failing
	// transaction would be rejected whole.
	trans := s.mempool.PickBest(int(s.genesis.TransPerBlock))
	committable, _ := database.CommitBatch(trans, s.db.TipLedger())
	if len(committable) == 0 {
		return database.Block{}, ErrNoCommittableTrans
	}

	tipBlock := s.db.TipBlock()
	height := s.db.TipHeight() + 1

	coinbase := database.NewCoinbaseTx(height, s.beneficiaryID, s.genesis.CoinbaseReward)

	block, err := database.NewBlock(tipBlock.Hash(), uint64(time.Now().UTC().Unix()), coinbase, committable)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: AssembleBlock: assembled: height[%d]: trans[%d]", height, len(committable))

	if !s.acceptBlock(block) {
		return database.Block{}, errors.New("assembled block was rejected")
	}

	return block, nil
}

// acceptBlock runs the admission sequence under the writer lock held by
// the caller: index commit, tip re-selection and pruning inside the
// database, then pending pool cleanup for the confirmed transactions.
func (s *State) acceptBlock(block database.Block) bool {
	committed, err := s.db.AddBlock(block)
	if err != nil {
		s.evHandler("state: AddBlock: rejected: blk[%s]: %s", block.Hash(), err)
		return false
	}

	for _, tx := range committed {
		s.mempool.Delete(tx.ID())
	}

	s.evHandler("state: AddBlock: accepted: blk[%s]: height[%d]: trans[%d]: mempool[%d]", block.Hash(), s.db.TipHeight(), len(committed), s.mempool.Count())

	return true
}
