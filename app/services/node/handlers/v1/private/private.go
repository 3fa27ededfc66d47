// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"errors"
	"net/http"

	v1 "github.com/utxolabs/blockchain/business/web/v1"
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/state"
	"github.com/utxolabs/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// SubmitBlock accepts a block from a peer for admission into the chain.
// The response only carries accept or reject, the admission rules make
// no finer distinction to callers.
func (h Handlers) SubmitBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var block database.Block
	if err := web.Decode(r, &block); err != nil {
		return err
	}

	h.Log.Infow("add peer block", "traceid", v.TraceID, "block", block.Hash(), "prev", block.Header.PrevBlockHash)

	if !h.State.AddBlock(block) {
		return v1.NewRequestError(errors.New("block rejected"), http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		Hash   string `json:"hash"`
		Height uint64 `json:"height"`
	}{
		Status: "block accepted",
		Hash:   block.Hash(),
		Height: h.State.TipHeight(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tip := h.State.TipBlock()

	resp := struct {
		TipHash      string             `json:"tip_hash"`
		TipHeight    uint64             `json:"tip_height"`
		Tips         []database.TipInfo `json:"tips"`
		BlocksCount  int                `json:"blocks_count"`
		MempoolCount int                `json:"mempool_count"`
	}{
		TipHash:      tip.Hash(),
		TipHeight:    h.State.TipHeight(),
		Tips:         h.State.Tips(),
		BlocksCount:  h.State.BlocksCount(),
		MempoolCount: h.State.MempoolCount(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
