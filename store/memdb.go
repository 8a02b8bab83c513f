package store

import (
	"sync"

	"github.com/djrtwo/simple-contracts/errors"
	"github.com/google/btree"
)

// MemDB is an in-memory KVStore that keeps its data in a btree. It is the
// base layer of an application that does not need to survive a restart.
//
// Unlike a CacheWrap, writes are applied in place and there is no parent
// store.
type MemDB struct {
	mu sync.RWMutex
	bt *btree.BTree
}

var _ KVStore = (*MemDB)(nil)

// NewMemDB returns an empty MemDB wrapped so that it supports cache
// wrapping.
func NewMemDB() CacheableKVStore {
	return Cacheable{KVStore: &MemDB{bt: btree.New(btreeDegree)}}
}

// Get returns the value stored under the key or nil.
func (m *MemDB) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := lookup(m.bt, key); ok {
		return e.value, nil
	}
	return nil, nil
}

// Has returns true if the key is present.
func (m *MemDB) Has(key []byte) (bool, error) {
	val, err := m.Get(key)
	return val != nil, err
}

// Set stores a copy of the value under a copy of the key.
func (m *MemDB) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bt.ReplaceOrInsert(entry{
		key:   append([]byte(nil), key...),
		value: append([]byte{}, value...),
	})
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (m *MemDB) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bt.Delete(entry{key: key})
	return nil
}
