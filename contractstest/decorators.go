package contractstest

import contracts "github.com/djrtwo/simple-contracts"

// Decorator counts its calls and passes them on to the next handler,
// unless CheckErr or DeliverErr is set, in which case it fails first.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks, delivers int
}

var _ contracts.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx, next contracts.Checker) (*contracts.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (*contracts.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }

// Decorate wraps a single handler with a single decorator.
func Decorate(h contracts.Handler, d contracts.Decorator) contracts.Handler {
	return decorated{dec: d, next: h}
}

type decorated struct {
	dec  contracts.Decorator
	next contracts.Handler
}

func (h decorated) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	return h.dec.Check(ctx, db, tx, h.next)
}

func (h decorated) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	return h.dec.Deliver(ctx, db, tx, h.next)
}
