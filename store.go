package contracts

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist.
	Get(key []byte) ([]byte, error)
	// Has returns true if the key exists.
	Has(key []byte) (bool, error)
}

// SetDeleter is the writing half of a KVStore.
type SetDeleter interface {
	Set(key, value []byte) error // key and value must not be modified
	Delete(key []byte) error
}

// KVStore is the store every handler works on. Keys are ordered bytewise.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// CacheableKVStore is a KVStore that can stage writes in a cache wrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad of uncommitted writes over a parent store.
// Reads see the staged writes first and fall back to the parent.
//
// Write applies the staged writes to the parent, Discard drops them. A
// cache wrap can be wrapped again, much like a nested SAVEPOINT.
type KVCacheWrap interface {
	CacheableKVStore

	Write() error
	Discard()
}
