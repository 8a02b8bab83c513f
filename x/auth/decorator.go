package auth

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Decorator verifies the signatures and adds the signers to the context.
type Decorator struct{}

var _ contracts.Decorator = Decorator{}

// NewDecorator returns a decorator that requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Checker) (*contracts.CheckResult, error) {
	ctx, err := d.withVerifiedSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (*contracts.DeliverResult, error) {
	ctx, err := d.withVerifiedSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withVerifiedSigners(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx) (contracts.Context, error) {
	var signers []contracts.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, contracts.GetChainID(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
