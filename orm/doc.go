/*
Package orm provides typed model buckets on top of a KVStore.

Every bucket owns a prefixed section of the store and holds a single model
type. Models are persisted using the amino binary codec, can be given a
primary key or get the next value of the bucket sequence, and may be
referenced by any number of secondary indexes. Both the bucket and its
indexes can be registered with the query router.
*/
package orm
