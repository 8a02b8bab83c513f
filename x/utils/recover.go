package utils

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Recovery fails a transaction with ErrPanic if anything below it in the
// chain panics. The panic value is logged with the message path.
type Recovery struct{}

var _ contracts.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Checker) (_ *contracts.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (_ *contracts.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverTx must be deferred directly.
func recoverTx(ctx contracts.Context, tx contracts.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	contracts.GetLogger(ctx).Error("Transaction panicked",
		"path", contracts.GetPath(tx), "panic", r)
}
