package app

import (
	"reflect"

	contracts "github.com/djrtwo/simple-contracts"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap. The first decorator runs first.
type Decorators struct {
	chain []contracts.Decorator
}

// ChainDecorators starts a decorator list. Nil decorators, including typed
// nil pointers, are skipped so optional ones can be passed unconditionally.
func ChainDecorators(chain ...contracts.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of the list with more decorators appended.
func (d Decorators) Chain(chain ...contracts.Decorator) Decorators {
	out := Decorators{chain: append([]contracts.Decorator(nil), d.chain...)}
	for _, dec := range chain {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		out.chain = append(out.chain, dec)
	}
	return out
}

// WithHandler closes the list over h.
func (d Decorators) WithHandler(h contracts.Handler) contracts.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated is a handler that hands the call to dec with next as the
// continuation.
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
