// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/utxolabs/blockchain/app/services/node/handlers/v1/private"
	"github.com/utxolabs/blockchain/app/services/node/handlers/v1/public"
	"github.com/utxolabs/blockchain/foundation/blockchain/state"
	"github.com/utxolabs/blockchain/foundation/events"
	"github.com/utxolabs/blockchain/foundation/nameservice"
	"github.com/utxolabs/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	Evts  *events.Events
}

const version = "v1"

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/chain/tip", pbl.TipBlock)
	app.Handle(http.MethodGet, version, "/chain/ledger", pbl.Ledger)
	app.Handle(http.MethodGet, version, "/chain/mempool", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/owners/:owner/utxos", pbl.OwnerUTXOs)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, version, "/block/submit", prv.SubmitBlock)
	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
}
