package orm

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// SeqID is the name of the sequence used to generate primary keys.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket stores a single model type in its own prefixed section of the
// store.
type ModelBucket interface {
	// One loads the model stored under the primary key into dest. It
	// returns ErrNotFound if there is no such entity and ErrType if dest
	// is not of the bucket model type.
	One(db contracts.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with the primary key exists,
	// ErrNotFound otherwise.
	Has(db contracts.ReadOnlyKVStore, key []byte) error

	// Put saves the model under the primary key. If key is nil, the next
	// sequence value is used. The used key is returned.
	Put(db contracts.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the entity with the primary key. It returns
	// ErrNotFound if the entity does not exist.
	Delete(db contracts.KVStore, key []byte) error

	// ByIndex loads all models referenced by the named index under given
	// value into destination and returns their primary keys.
	ByIndex(db contracts.ReadOnlyKVStore, indexName string, value []byte, destination ModelSlicePtr) ([][]byte, error)

	// Sequence returns the primary key sequence of this bucket.
	Sequence() Sequence

	// Register the bucket and all its indexes for queries. The bucket is
	// available under "/<name>" and each index under "/<name>/<index>".
	Register(name string, r contracts.QueryRouter)
}

// ModelBucketOption configures a model bucket.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index. Registering two indexes with the same
// name panics.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q registered twice", name))
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique)
	}
}

// NewModelBucket returns a bucket storing instances of the same type as
// model. The model must be a pointer.
func NewModelBucket(name string, model Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", model))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   t,
		seq:     NewSequence(name, SeqID),
		indexes: make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	seq     Sequence
	indexes map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey returns a new slice so that consecutive calls never share the
// prefix backing array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model.Elem()).Interface().(Model)
}

func (mb *modelBucket) One(db contracts.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %v", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	return dest.Unmarshal(raw)
}

func (mb *modelBucket) Has(db contracts.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db contracts.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if key == nil {
		var err error
		if key, err = mb.seq.NextVal(db); err != nil {
			return nil, errors.Wrap(err, "cannot acquire key")
		}
	}

	if len(mb.indexes) > 0 {
		prev, err := mb.load(db, key)
		if err != nil {
			return nil, err
		}
		if err := mb.updateIndexes(db, key, prev, m); err != nil {
			return nil, err
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize model")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db contracts.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.name, key)
	}
	if err := mb.updateIndexes(db, key, prev, nil); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}

// load returns the stored model or nil if it does not exist.
func (mb *modelBucket) load(db contracts.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := m.Unmarshal(raw); err != nil {
		return nil, err
	}
	return m, nil
}

func (mb *modelBucket) updateIndexes(db contracts.KVStore, key []byte, prev, next Model) error {
	// Indexes are updated in a stable order so that the same operation
	// always results in the same writes.
	names := make([]string, 0, len(mb.indexes))
	for name := range mb.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := mb.indexes[name].update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db contracts.ReadOnlyKVStore, indexName string, value []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", indexName)
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", destination)
	}
	slice := dest.Elem()
	elem := slice.Type().Elem()
	ptrElem := elem.Kind() == reflect.Ptr
	if (ptrElem && elem != mb.model) || (!ptrElem && reflect.PtrTo(elem) != mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "%v cannot hold %v", slice.Type(), mb.model)
	}

	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", indexName)
	}
	for _, key := range keys {
		m, err := mb.load(db, key)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s references missing %x", indexName, key)
		}
		v := reflect.ValueOf(m)
		if !ptrElem {
			v = v.Elem()
		}
		slice = reflect.Append(slice, v)
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Sequence() Sequence {
	return mb.seq
}

func (mb *modelBucket) Register(name string, r contracts.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	root := "/" + name
	r.Register(root, bucketQuery{mb})
	for idxName := range mb.indexes {
		r.Register(root+"/"+idxName, indexQuery{mb: mb, name: idxName})
	}
}
