package contracts

import (
	"encoding/json"

	"github.com/djrtwo/simple-contracts/errors"
)

// Options is the genesis document, one raw JSON section per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis section of an extension into the store.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs the initializers in order and stops at the first
// failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (list initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range list {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
