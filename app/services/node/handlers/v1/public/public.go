// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/state"
	"github.com/utxolabs/blockchain/foundation/events"
	"github.com/utxolabs/blockchain/foundation/nameservice"
	"github.com/utxolabs/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new user transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx submitTx
	if err := web.Decode(r, &newTx); err != nil {
		return err
	}

	tx := toDatabaseTx(newTx)

	h.Log.Infow("add user tran", "traceid", v.TraceID, "tx", tx.ID(), "inputs", len(tx.Inputs), "outputs", len(tx.Outputs))
	h.State.SubmitTransaction(tx)

	resp := struct {
		Status string `json:"status"`
		TxID   string `json:"tx_id"`
	}{
		Status: "transaction added to pending pool",
		TxID:   tx.ID(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// TipBlock returns the block at the head of the canonical working branch.
func (h Handlers) TipBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block := h.State.TipBlock()

	resp := struct {
		Hash   string         `json:"hash"`
		Height uint64         `json:"height"`
		Block  database.Block `json:"block"`
	}{
		Hash:   block.Hash(),
		Height: h.State.TipHeight(),
		Block:  block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Ledger returns the unspent output set of the canonical working branch.
func (h Handlers) Ledger(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ledger := h.State.TipLedger()
	return web.Respond(ctx, w, ledger, http.StatusOK)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.Mempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// OwnerUTXOs returns the unspent outputs owned by the specified public key.
func (h Handlers) OwnerUTXOs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	owner := web.Param(r, "owner")

	utxos := h.State.OwnerUTXOs(owner)

	resp := struct {
		OwnerID string             `json:"owner_id"`
		Name    string             `json:"name"`
		Balance uint64             `json:"balance"`
		UTXOs   database.LedgerSet `json:"utxos"`
	}{
		OwnerID: owner,
		Name:    h.NS.Lookup(owner),
		Balance: utxos.Balance(owner),
		UTXOs:   utxos,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
