package store

import (
	"bytes"

	"github.com/djrtwo/simple-contracts/errors"
	"github.com/google/btree"
)

// btreeDegree is used by every btree in this package.
const btreeDegree = 2

// entry is a key with either a value or a deletion mark. Both the MemDB and
// the cache wraps keep their entries ordered by key in a btree.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

func lookup(bt *btree.BTree, key []byte) (entry, bool) {
	it := bt.Get(entry{key: key})
	if it == nil {
		return entry{}, false
	}
	return it.(entry), true
}

// Cacheable adds cache wrapping to any KVStore.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

// CacheWrap starts a new set of staged writes on top of the store.
func (c Cacheable) CacheWrap() KVCacheWrap {
	return newCacheWrap(c.KVStore)
}

// CacheWrap stages writes in memory until Write or Discard is called.
type CacheWrap struct {
	parent  KVStore
	pending *btree.BTree
}

var _ KVCacheWrap = (*CacheWrap)(nil)

func newCacheWrap(parent KVStore) *CacheWrap {
	return &CacheWrap{
		parent:  parent,
		pending: btree.New(btreeDegree),
	}
}

// CacheWrap stages writes on top of this cache wrap. Writing it makes the
// changes visible here, not in the parent.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return newCacheWrap(c)
}

func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	if e, ok := lookup(c.pending, key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c *CacheWrap) Has(key []byte) (bool, error) {
	val, err := c.Get(key)
	return val != nil, err
}

func (c *CacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.pending.ReplaceOrInsert(entry{
		key:   append([]byte(nil), key...),
		value: append([]byte{}, value...),
	})
	return nil
}

func (c *CacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.pending.ReplaceOrInsert(entry{key: append([]byte(nil), key...), deleted: true})
	return nil
}

// Write applies all staged writes to the parent in key order and empties
// the cache wrap.
func (c *CacheWrap) Write() error {
	var err error
	c.pending.Ascend(func(it btree.Item) bool {
		e := it.(entry)
		if e.deleted {
			err = c.parent.Delete(e.key)
		} else {
			err = c.parent.Set(e.key, e.value)
		}
		return err == nil
	})
	c.Discard()
	return errors.Wrap(err, "cannot write cache")
}

// Discard drops all staged writes.
func (c *CacheWrap) Discard() {
	c.pending = btree.New(btreeDegree)
}
