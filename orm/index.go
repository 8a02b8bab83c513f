package orm

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Indexer calculates the secondary index value for a model. Returning a
// nil value means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index references the primary keys of a bucket by a secondary value. All
// keys indexed under a single value are stored together, as one key for a
// unique index, as a MultiRef otherwise.
type index struct {
	name   string
	prefix []byte
	unique bool
	fn     Indexer
}

func newIndex(bucket, name string, fn Indexer, unique bool) *index {
	return &index{
		name:   name,
		prefix: []byte("_i." + bucket + "_" + name + ":"),
		unique: unique,
		fn:     fn,
	}
}

func (i *index) dbKey(value []byte) []byte {
	out := make([]byte, len(i.prefix)+len(value))
	copy(out, i.prefix)
	copy(out[len(i.prefix):], value)
	return out
}

// update moves the primary key reference from the prev value to the next
// value. A nil prev means insert, a nil next means delete.
func (i *index) update(db contracts.KVStore, key []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one model")
	}
	var before, after []byte
	var err error
	if prev != nil {
		if before, err = i.fn(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if next != nil {
		if after, err = i.fn(next); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if prev != nil && next != nil && string(before) == string(after) {
		return nil
	}
	if before != nil {
		if err := i.remove(db, before, key); err != nil {
			return err
		}
	}
	if after != nil {
		if err := i.insert(db, after, key); err != nil {
			return err
		}
	}
	return nil
}

func (i *index) insert(db contracts.KVStore, value, key []byte) error {
	k := i.dbKey(value)
	raw, err := db.Get(k)
	if err != nil {
		return err
	}
	if i.unique {
		if raw != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(k, key)
	}

	var refs MultiRef
	if raw != nil {
		if err := refs.Unmarshal(raw); err != nil {
			return err
		}
	}
	if err := refs.Add(key); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.save(db, k, &refs)
}

func (i *index) remove(db contracts.KVStore, value, key []byte) error {
	k := i.dbKey(value)
	raw, err := db.Get(k)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s has no entry", i.name)
	}
	if i.unique {
		if string(raw) != string(key) {
			return errors.Wrapf(errors.ErrDatabase, "index %s references another key", i.name)
		}
		return db.Delete(k)
	}

	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return err
	}
	if err := refs.Remove(key); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(k)
	}
	return i.save(db, k, &refs)
}

func (i *index) save(db contracts.KVStore, k []byte, refs *MultiRef) error {
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(k, raw)
}

// keys returns all primary keys indexed under given value.
func (i *index) keys(db contracts.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.dbKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}
