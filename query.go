package contracts

import (
	"fmt"

	"github.com/djrtwo/simple-contracts/errors"
)

// Query modifiers, passed after a "?" in a query path. Only exact key
// lookups are served, a prefix query is rejected by the handlers.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single result of a query, a raw key with its raw value.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair is a shortcut for Model{Key: key, Value: value}.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler reads models from the store. Data is the key looked up,
// mod is one of the query modifiers.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister registers the query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by path, like "/escrows" or
// "/escrows/sender".
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register binds a handler to the path. Registering a path twice panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to the path. An unknown path gets a
// handler that fails every query with ErrNotFound.
func (r QueryRouter) Handler(path string) QueryHandler {
	h, ok := r.routes[path]
	if !ok {
		return unknownQuery(path)
	}
	return h
}

type unknownQuery string

func (path unknownQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "query path %q", string(path))
}
