// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/genesis"
	"github.com/utxolabs/blockchain/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks and transactions.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for block assembly.
type Worker interface {
	Shutdown()
	SignalBlockAssembly()
}

// =============================================================================

// Config represents the configuration required to start the chain state.
type Config struct {
	BeneficiaryID string
	Genesis       genesis.Genesis
	EvHandler     EventHandler
}

// State manages the blockchain database and the pending transaction
// pool. All mutation runs under one writer lock per instance, fork
// choice and pruning read then write the tip set and would race
// otherwise.
type State struct {
	mu sync.Mutex

	beneficiaryID string
	evHandler     EventHandler

	genesis genesis.Genesis
	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a new chain state from the genesis information. A
// malformed genesis is a contract violation and fails construction,
// there is no second chance at installing a genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The genesis block is derived deterministically from the genesis
	// file so every node starts from the same sole index entry.
	genesisBlock, err := database.NewGenesisBlock(cfg.Genesis.BeneficiaryID, cfg.Genesis.CoinbaseReward, uint64(cfg.Genesis.Date.UTC().Unix()))
	if err != nil {
		return nil, err
	}

	db, err := database.New(genesisBlock, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,

		genesis: cfg.Genesis,
		mempool: mempool.New(),
		db:      db,
	}

	// The Worker is not set here. The call to worker.Run will assign
	// itself and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the state down.
func (s *State) Shutdown() error {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
