package app

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/x"
	"github.com/djrtwo/simple-contracts/x/auth"
	"github.com/djrtwo/simple-contracts/x/cash"
	"github.com/djrtwo/simple-contracts/x/escrow"
	"github.com/djrtwo/simple-contracts/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return auth.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// StdDecorators returns the chain every transaction passes through before
// reaching the router. A nil metrics decorator is skipped.
func StdDecorators(metrics *utils.Metrics) Decorators {
	d := ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
	)
	if metrics != nil {
		d = d.Chain(*metrics)
	}
	return d.Chain(
		auth.NewDecorator(),
		// a failed transaction still must not leave partial state
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Routes registers the handlers of all extensions.
func Routes(authFn x.Authenticator, ctrl cash.Controller) *Router {
	r := NewRouter()
	cash.RegisterRoutes(r, authFn, ctrl)
	escrow.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a query router exposing "/signers", "/wallets" and
// "/escrows" along with their indexes.
func QueryRouter() contracts.QueryRouter {
	r := contracts.NewQueryRouter()
	r.RegisterAll(
		auth.RegisterQuery,
		cash.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Initializers loads the "cash" and "escrow" genesis sections.
func Initializers(ctrl cash.Controller) contracts.Initializer {
	return contracts.ChainInitializers(
		cash.Initializer{},
		&escrow.Initializer{Minter: ctrl},
	)
}

// Stack wires up the standard router with the standard decorator chain.
func Stack(metrics *utils.Metrics) contracts.Handler {
	return StdDecorators(metrics).WithHandler(Routes(Authenticator(), CashControl()))
}

// NewEscrowApplication builds the application described by the
// configuration. Metrics are registered only if reg is not nil.
func NewEscrowApplication(cfg Config, store contracts.CacheableKVStore, logger log.Logger, reg prometheus.Registerer) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var metrics *utils.Metrics
	if reg != nil {
		m, err := utils.NewMetrics(cfg.MetricsNamespace, reg)
		if err != nil {
			return nil, err
		}
		metrics = &m
	}
	a, err := NewApplication(store, Stack(metrics), QueryRouter(), Initializers(CashControl()), cfg.Debug)
	if err != nil {
		return nil, err
	}
	return a.WithLogger(logger), nil
}
