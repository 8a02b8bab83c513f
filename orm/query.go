package orm

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// bucketQuery answers primary key lookups.
type bucketQuery struct {
	mb *modelBucket
}

var _ contracts.QueryHandler = bucketQuery{}

func (q bucketQuery) Query(db contracts.ReadOnlyKVStore, mod string, data []byte) ([]contracts.Model, error) {
	if mod != contracts.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	key := q.mb.dbKey(data)
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []contracts.Model{contracts.Pair(key, value)}, nil
}

// indexQuery answers secondary index lookups with all referenced models.
type indexQuery struct {
	mb   *modelBucket
	name string
}

var _ contracts.QueryHandler = indexQuery{}

func (q indexQuery) Query(db contracts.ReadOnlyKVStore, mod string, data []byte) ([]contracts.Model, error) {
	if mod != contracts.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	refs, err := q.mb.indexes[q.name].keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]contracts.Model, 0, len(refs))
	for _, ref := range refs {
		key := q.mb.dbKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s references missing %x", q.name, ref)
		}
		res = append(res, contracts.Pair(key, value))
	}
	return res, nil
}
