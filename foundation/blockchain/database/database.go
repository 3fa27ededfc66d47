// Package database maintains the bounded window of competing block chain
// branches, the ledger snapshot each retained block owns, and the
// selection of the canonical working branch.
package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// CutOffAge is the maximum height difference between the canonical tip
// and a block still eligible for extension. Anything older is pruned,
// which bounds index memory to the width of the fork set times this
// constant rather than the total chain length.
const CutOffAge = 10

// Set of errors for block admission. AddBlock callers only need the
// accept/reject outcome, the specific error exists for logging.
var (
	ErrMissingParent   = errors.New("only the genesis block may omit a parent")
	ErrUnknownParent   = errors.New("parent block not in the index")
	ErrDuplicateBlock  = errors.New("block already in the index")
	ErrStaleHeight     = errors.New("block height below the retention cutoff")
	ErrInvalidCoinbase = errors.New("coinbase must produce exactly one output")
	ErrInvalidTrans    = errors.New("block contains transactions that do not commit")
)

// =============================================================================

// BlockRecord represents a retained block with its height and the ledger
// snapshot that results from applying the block's transactions. A record
// is created once when the block is accepted, is immutable thereafter,
// and is destroyed only by pruning.
type BlockRecord struct {
	Block  Block
	Height uint64
	Ledger LedgerSet

	seq uint64
}

// TipInfo describes one branch tip for status reporting.
type TipInfo struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// =============================================================================

// Database manages the index of retained blocks and the set of branch
// tips ordered by descending height with oldest inserted first among
// equal heights. The front tip is the canonical working branch.
type Database struct {
	mu        sync.RWMutex
	evHandler func(v string, args ...any)

	records map[string]*BlockRecord
	tips    []*BlockRecord
	seq     uint64
}

// New constructs the database with the specified genesis block as the
// sole index entry and sole tip. A malformed genesis is a contract
// violation and fails construction.
func New(genesisBlock Block, evHandler func(v string, args ...any)) (*Database, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	if genesisBlock.Header.PrevBlockHash != signature.ZeroHash {
		return nil, errors.New("invalid genesis block: declares a parent")
	}

	if len(genesisBlock.Trans) != 0 {
		return nil, errors.New("invalid genesis block: contains ordinary transactions")
	}

	if len(genesisBlock.Coinbase.Outputs) != 1 {
		return nil, ErrInvalidCoinbase
	}

	if err := genesisBlock.ValidateTransRoot(); err != nil {
		return nil, fmt.Errorf("invalid genesis block: %w", err)
	}

	ledger := NewLedgerSet()
	ledger[UTXOID{TxID: genesisBlock.Coinbase.ID(), Index: 0}] = genesisBlock.Coinbase.Outputs[0]

	record := BlockRecord{
		Block:  genesisBlock,
		Height: 0,
		Ledger: ledger,
	}

	db := Database{
		evHandler: ev,
		records:   map[string]*BlockRecord{genesisBlock.Hash(): &record},
		tips:      []*BlockRecord{&record},
		seq:       1,
	}

	return &db, nil
}

// =============================================================================

// AddBlock validates the block against its parent branch and commits it
// to the index. On acceptance the committed ordinary transactions are
// returned so the caller can drop them from the pending pool. On
// rejection the returned error carries the reason, acceptance is
// all or nothing per block.
func (db *Database) AddBlock(block Block) ([]Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if block.Header.PrevBlockHash == signature.ZeroHash {
		return nil, ErrMissingParent
	}

	parent, exists := db.records[block.Header.PrevBlockHash]
	if !exists {
		return nil, ErrUnknownParent
	}

	blockHash := block.Hash()
	if _, exists := db.records[blockHash]; exists {
		return nil, ErrDuplicateBlock
	}

	height := parent.Height + 1
	maxTipHeight := db.tips[0].Height
	if maxTipHeight >= CutOffAge && height <= maxTipHeight-CutOffAge {
		return nil, ErrStaleHeight
	}

	if len(block.Coinbase.Outputs) != 1 {
		return nil, ErrInvalidCoinbase
	}

	if err := block.ValidateTransRoot(); err != nil {
		return nil, err
	}

	// Run the ordinary transactions against the parent's snapshot. Every
	// one of them has to commit for the block to be accepted.
	committed, ledger := CommitBatch(block.Trans, parent.Ledger)
	if len(committed) != len(block.Trans) {
		return nil, ErrInvalidTrans
	}

	// The coinbase is exempt from normal validation, it has no inputs
	// to check. Its single output joins the new snapshot directly.
	ledger[UTXOID{TxID: block.Coinbase.ID(), Index: 0}] = block.Coinbase.Outputs[0]

	record := BlockRecord{
		Block:  block,
		Height: height,
		Ledger: ledger,
		seq:    db.seq,
	}
	db.seq++

	db.records[blockHash] = &record

	// The new block replaces its parent as a branch tip.
	for i, tip := range db.tips {
		if tip == parent {
			db.tips = append(db.tips[:i], db.tips[i+1:]...)
			break
		}
	}
	db.tips = append(db.tips, &record)
	db.sortTips()

	db.prune()

	db.evHandler("database: AddBlock: accepted: blk[%s]: height[%d]: trans[%d]", blockHash, height, len(committed))

	return committed, nil
}

// sortTips keeps the tip set ordered by descending height, with ties
// broken by insertion sequence so the oldest inserted tip keeps priority.
func (db *Database) sortTips() {
	sort.Slice(db.tips, func(i, j int) bool {
		if db.tips[i].Height != db.tips[j].Height {
			return db.tips[i].Height > db.tips[j].Height
		}
		return db.tips[i].seq < db.tips[j].seq
	})
}

// prune drops every record whose height has fallen below the retention
// cutoff. A stale branch tip is removed with its record, losing tip
// status at that moment. The canonical tip can never be below the
// cutoff since the cutoff is derived from its own height.
func (db *Database) prune() {
	maxTipHeight := db.tips[0].Height
	if maxTipHeight < CutOffAge {
		return
	}
	cutoff := maxTipHeight - CutOffAge

	for hash, record := range db.records {
		if record.Height >= cutoff {
			continue
		}

		delete(db.records, hash)

		for i, tip := range db.tips {
			if tip == record {
				db.tips = append(db.tips[:i], db.tips[i+1:]...)
				db.evHandler("database: prune: dropped stale tip: blk[%s]: height[%d]", hash, record.Height)
				break
			}
		}
	}
}

// =============================================================================

// TipBlock returns the block at the head of the canonical working branch.
func (db *Database) TipBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tips[0].Block
}

// TipHeight returns the height of the canonical working branch.
func (db *Database) TipHeight() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tips[0].Height
}

// TipLedger returns an independent copy of the ledger snapshot at the
// head of the canonical working branch.
func (db *Database) TipLedger() LedgerSet {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tips[0].Ledger.Clone()
}

// Tips returns the current branch tips in priority order.
func (db *Database) Tips() []TipInfo {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tips := make([]TipInfo, len(db.tips))
	for i, tip := range db.tips {
		tips[i] = TipInfo{Hash: tip.Block.Hash(), Height: tip.Height}
	}
	return tips
}

// GetRecord returns a copy of the record for the specified block hash.
// The ledger is cloned, ownership of the live snapshot stays with the
// index entry.
func (db *Database) GetRecord(blockHash string) (BlockRecord, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	record, exists := db.records[blockHash]
	if !exists {
		return BlockRecord{}, false
	}

	return BlockRecord{
		Block:  record.Block,
		Height: record.Height,
		Ledger: record.Ledger.Clone(),
	}, true
}

// BlocksCount returns the number of retained records.
func (db *Database) BlocksCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.records)
}
