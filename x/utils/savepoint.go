package utils

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Savepoint runs the rest of the chain on a cache wrap of the store. The
// changes are written only if the call succeeds, otherwise all of them are
// discarded, so a transaction never leaves partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ contracts.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that passes every call through. Enable
// it per phase with OnCheck and OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck wraps Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver wraps Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Checker) (*contracts.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *contracts.CheckResult
	err := savepoint(store, func(db contracts.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (*contracts.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *contracts.DeliverResult
	err := savepoint(store, func(db contracts.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint calls fn with a cache wrap of the store, if the store supports
// it, and writes the cache only when fn succeeds.
func savepoint(store contracts.KVStore, fn func(contracts.KVStore) error) error {
	cstore, ok := store.(contracts.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
