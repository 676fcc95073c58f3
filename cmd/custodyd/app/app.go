/*
Package app links together all the various components
to construct the custody application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/app"
	"github.com/custodylabs/custody/errors"
	"github.com/custodylabs/custody/store/iavl"
	"github.com/custodylabs/custody/x"
	"github.com/custodylabs/custody/x/cash"
	"github.com/custodylabs/custody/x/escrow"
	"github.com/custodylabs/custody/x/sigs"
	"github.com/custodylabs/custody/x/utils"
	"github.com/custodylabs/custody/x/vault"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics are only collected when m is set.
func Chain(m *utils.Metrics) app.Decorators {
	var metrics custody.Decorator
	if m != nil {
		metrics = m
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		metrics,
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash, vault and escrow
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	bank := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, bank)
	vault.RegisterRoutes(r, authFn, bank)
	escrow.RegisterRoutes(r, authFn, bank)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/vaults", "/vaults/owner", "/escrows" and
// "/escrows/maker"
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		vault.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp. Metrics are registered with reg
// unless it is nil.
func Stack(reg prometheus.Registerer) (custody.Handler, error) {
	var metrics *utils.Metrics
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		metrics = m
	}
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn)), nil
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h custody.Handler,
	tx custody.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStore("", "custody")
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
