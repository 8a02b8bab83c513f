package contracts

// Handler processes the messages of one or more paths, like
// "escrow/create" or "escrow/confirm".
//
// Check validates a transaction against the current state and must not
// have side effects that outlive the call. Deliver executes it.
type Handler interface {
	Checker
	Deliverer
}

// Checker is the checking half of a Handler, used as the next step in a
// Decorator chain.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is the delivering half of a Handler, used as the next step in
// a Decorator chain.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before a handler, for example to authenticate a
// transaction or to log it, and decides whether to call next.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths. Passing a message instead of
// a path documents which type the handler expects.
type Registry interface {
	Handle(Msg, Handler)
}

// CheckResult is returned by a successful Check. Failures are errors.
type CheckResult struct {
	// Data is machine readable, like the id of a created entity.
	Data []byte
	// Log is for humans.
	Log string
}

// DeliverResult is returned by a successful Deliver. Failures are errors.
type DeliverResult struct {
	// Data is machine readable, like the id of a created entity.
	Data []byte
	// Log is for humans.
	Log string
}
