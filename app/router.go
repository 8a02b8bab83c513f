package app

import (
	"fmt"
	"regexp"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// isPath is the RegExp to ensure valid message paths
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path of
// its message.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]contracts.Handler
}

var (
	_ contracts.Registry = (*Router)(nil)
	_ contracts.Handler  = (*Router)(nil)
)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]contracts.Handler, 10),
	}
}

// Handle adds a new Handler for the path of the given message.
// panics if another Handler was already registered
func (r *Router) Handle(msg contracts.Msg, h contracts.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler.
// Always returns a non-nil Handler
func (r *Router) Handler(path string) contracts.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}

func (r *Router) route(tx contracts.Tx) (contracts.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction message")
	}
	return r.Handler(msg.Path()), nil
}

// noSuchPathHandler returns ErrNotFound for every call
type noSuchPathHandler string

var _ contracts.Handler = noSuchPathHandler("")

func (path noSuchPathHandler) Check(contracts.Context, contracts.KVStore, contracts.Tx) (*contracts.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path noSuchPathHandler) Deliver(contracts.Context, contracts.KVStore, contracts.Tx) (*contracts.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
