package store

import contracts "github.com/djrtwo/simple-contracts"

type (
	ReadOnlyKVStore  = contracts.ReadOnlyKVStore
	KVStore          = contracts.KVStore
	CacheableKVStore = contracts.CacheableKVStore
	KVCacheWrap      = contracts.KVCacheWrap
)
