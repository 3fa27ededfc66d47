// Package worker implements block assembly for the blockchain. Pending
// transactions are batched into candidate blocks over the canonical tip
// on a signal or timer basis.
package worker

import (
	"errors"
	"sync"
	"time"

	"github.com/utxolabs/blockchain/foundation/blockchain/state"
)

// assemblyInterval represents how often a candidate block is assembled
// from the pending pool when no signal arrives first.
const assemblyInterval = 10 * time.Second

// =============================================================================

// Worker manages the block assembly workflow for the blockchain.
type Worker struct {
	state         *state.State
	wg            sync.WaitGroup
	ticker        *time.Ticker
	shut          chan struct{}
	startAssembly chan bool
	evHandler     state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:         st,
		ticker:        time.NewTicker(assemblyInterval),
		shut:          make(chan struct{}),
		startAssembly: make(chan bool, 1),
		evHandler:     evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	w.wg.Add(1)

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.assemblyOperations()
	}()

	<-hasStarted
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()

	close(w.shut)
	w.wg.Wait()
}

// SignalBlockAssembly starts a block assembly operation. If there is
// already a signal pending in the channel, just return since an
// assembly operation will start.
func (w *Worker) SignalBlockAssembly() {
	select {
	case w.startAssembly <- true:
	default:
	}
	w.evHandler("worker: SignalBlockAssembly: assembly signaled")
}

// =============================================================================

// assemblyOperations handles the assembly of new blocks from the
// pending pool.
func (w *Worker) assemblyOperations() {
	w.evHandler("worker: assemblyOperations: G started")
	defer w.evHandler("worker: assemblyOperations: G completed")

	for {
		select {
		case <-w.startAssembly:
			if !w.isShutdown() {
				w.runAssemblyOperation()
			}
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runAssemblyOperation()
			}
		case <-w.shut:
			return
		}
	}
}

// runAssemblyOperation takes the pending transactions and builds the
// next block over the canonical tip.
func (w *Worker) runAssemblyOperation() {
	w.evHandler("worker: runAssemblyOperation: assembly started")
	defer w.evHandler("worker: runAssemblyOperation: assembly completed")

	block, err := w.state.AssembleBlock()
	switch {
	case errors.Is(err, state.ErrNoTransactions):
		return
	case errors.Is(err, state.ErrNoCommittableTrans):
		w.evHandler("worker: runAssemblyOperation: pending transactions cannot commit yet")
		return
	case err != nil:
		w.evHandler("worker: runAssemblyOperation: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runAssemblyOperation: new block: blk[%s]", block.Hash())
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
