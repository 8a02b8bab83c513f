package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// chainIDKey is where the chain id is persisted by InitChain.
var chainIDKey = []byte("_contracts:chain_id")

// Application feeds transactions through a handler one at a time. It owns
// the committed state and the block information (height and time) that is
// exposed to the handlers through the context.
//
// All methods are safe for concurrent use. Calls are serialized so that
// every transaction observes the result of the previous one.
type Application struct {
	mu sync.Mutex

	logger log.Logger
	debug  bool

	store       contracts.CacheableKVStore
	handler     contracts.Handler
	queryRouter contracts.QueryRouter
	initializer contracts.Initializer

	// chainID is loaded from the store, saved once by InitChain
	chainID   string
	height    int64
	blockTime time.Time
}

// NewApplication returns an application working on top of given store. If
// the store was initialized before, the chain id is loaded from it.
func NewApplication(
	store contracts.CacheableKVStore,
	handler contracts.Handler,
	queryRouter contracts.QueryRouter,
	initializer contracts.Initializer,
	debug bool,
) (*Application, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Application{
		logger:      log.NewNopLogger(),
		debug:       debug,
		store:       store,
		handler:     handler,
		queryRouter: queryRouter,
		initializer: initializer,
		chainID:     chainID,
	}, nil
}

// WithLogger sets the logger on the Application and returns it,
// to make it easy to chain in initialization
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	return a
}

// ChainID returns the chain id or an empty string if the chain was not
// initialized yet.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// Height returns the height of the current block.
func (a *Application) Height() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// InitChain stores the chain id and loads the genesis state. It can be
// called only once for a given store. Either the whole genesis is applied or
// nothing is.
func (a *Application) InitChain(chainID string, appState []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", a.chainID)
	}
	if !contracts.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	var opts contracts.Options
	if len(appState) > 0 {
		if err := json.Unmarshal(appState, &opts); err != nil {
			return errors.Wrapf(errors.ErrInput, "app state: %s", err)
		}
	}

	cache := a.store.CacheWrap()
	if err := cache.Set(chainIDKey, []byte(chainID)); err != nil {
		cache.Discard()
		return errors.Wrap(err, "save chain id")
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}

	a.chainID = chainID
	a.logger.Info("Genesis loaded", "chain_id", chainID)
	return nil
}

// BeginBlock starts a new block, with given time as the "now" of every
// transaction processed until the next block. Block time cannot go
// backwards.
func (a *Application) BeginBlock(t time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	if t.Before(a.blockTime) {
		return errors.Wrapf(errors.ErrState, "block time %s before %s", t, a.blockTime)
	}
	a.height++
	a.blockTime = t
	a.logger.Debug("Begin block", "height", a.height, "time", t.UTC())
	return nil
}

// CheckTx validates the transaction against the current state. Changes
// made by the handler are always discarded.
func (a *Application) CheckTx(tx contracts.Tx) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := a.blockContext("check_tx", tx)
	if err != nil {
		return a.fail(err)
	}
	cache := a.store.CacheWrap()
	defer cache.Discard()

	res, err := a.check(ctx, cache, tx)
	if err != nil {
		return a.fail(err)
	}
	return checkResult(res)
}

// DeliverTx executes the transaction. Changes are written to the store only
// if the handler succeeds, a failure leaves the state untouched.
func (a *Application) DeliverTx(tx contracts.Tx) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := a.blockContext("deliver_tx", tx)
	if err != nil {
		return a.fail(err)
	}
	cache := a.store.CacheWrap()
	res, err := a.deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return a.fail(err)
	}
	if err := cache.Write(); err != nil {
		return a.fail(errors.Wrap(err, "write"))
	}
	return deliverResult(res)
}

// fail returns the result of a failed transaction. In debug mode the stack
// trace of the error is logged as well.
func (a *Application) fail(err error) Result {
	if a.debug {
		a.logger.Debug("Transaction failed", "trace", fmt.Sprintf("%+v", err))
	}
	return errorResult(err, a.debug)
}

func (a *Application) check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (res *contracts.CheckResult, err error) {
	defer errors.Recover(&err)
	return a.handler.Check(ctx, db, tx)
}

func (a *Application) deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (res *contracts.DeliverResult, err error) {
	defer errors.Recover(&err)
	return a.handler.Deliver(ctx, db, tx)
}

// blockContext returns the context a transaction is processed with.
func (a *Application) blockContext(call string, tx contracts.Tx) (contracts.Context, error) {
	if a.height == 0 {
		return nil, errors.Wrap(errors.ErrState, "no block started")
	}
	ctx := context.Background()
	ctx = contracts.WithChainID(ctx, a.chainID)
	ctx = contracts.WithHeight(ctx, a.height)
	ctx = contracts.WithBlockTime(ctx, a.blockTime)
	ctx = contracts.WithLogger(ctx, a.logger)
	return contracts.WithLogInfo(ctx, "call", call, "path", contracts.GetPath(tx)), nil
}

// Query reads models from the committed state. Path is "/<bucket>" or
// "/<bucket>/<index>" and data is the key looked up. A "?<mod>" suffix on
// the path is handed to the query handler as the query modifier.
func (a *Application) Query(path string, data []byte) ([]contracts.Model, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path, mod := splitPath(path)
	qh := a.queryRouter.Handler(path)
	models, err := qh.Query(a.store, mod, data)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return models, nil
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func loadChainID(db contracts.ReadOnlyKVStore) (string, error) {
	v, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}
