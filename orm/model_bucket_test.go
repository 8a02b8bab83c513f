package orm

import (
	"testing"

	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/store"
)

// note is a minimal model used to exercise buckets.
type note struct {
	Owner string
	Text  string
}

func (n *note) Marshal() ([]byte, error) { return MarshalModel(n) }

func (n *note) Unmarshal(raw []byte) error { return UnmarshalModel(raw, n) }

func (n *note) Validate() error {
	if n.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

// other is a model of a different type than note.
type other struct{ note }

func ownerIndex(m Model) ([]byte, error) {
	n, ok := m.(*note)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return []byte(n.Owner), nil
}

func TestModelBucket(t *testing.T) {
	db := store.NewMemDB()
	b := NewModelBucket("notes", &note{})

	key, err := b.Put(db, nil, &note{Owner: "alice", Text: "first"})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), key)

	key2, err := b.Put(db, nil, &note{Owner: "bob"})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), key2)

	var n note
	assert.Nil(t, b.One(db, key, &n))
	assert.Equal(t, note{Owner: "alice", Text: "first"}, n)
	assert.Nil(t, b.Has(db, key))

	_, err = b.Put(db, []byte("custom"), &note{Owner: "carol"})
	assert.Nil(t, err)
	latest, err := db.Get(b.Sequence().id)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), latest)

	_, err = b.Put(db, nil, &note{})
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = b.Put(db, nil, &other{note{Owner: "x"}})
	assert.IsErr(t, errors.ErrType, err)
	assert.IsErr(t, errors.ErrType, b.One(db, key, &other{}))

	assert.Nil(t, b.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, key, &n))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, key))
}

func TestModelBucketByIndex(t *testing.T) {
	db := store.NewMemDB()
	b := NewModelBucket("notes", &note{}, WithIndex("owner", ownerIndex, false))

	k1, err := b.Put(db, nil, &note{Owner: "alice", Text: "a"})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &note{Owner: "alice", Text: "b"})
	assert.Nil(t, err)
	k3, err := b.Put(db, nil, &note{Owner: "bob", Text: "c"})
	assert.Nil(t, err)

	var ptrs []*note
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &ptrs)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)
	assert.Equal(t, []*note{{Owner: "alice", Text: "a"}, {Owner: "alice", Text: "b"}}, ptrs)

	// Changing the indexed value moves the reference.
	_, err = b.Put(db, k2, &note{Owner: "bob", Text: "b"})
	assert.Nil(t, err)
	var vals []note
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &vals)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2, k3}, keys)
	assert.Equal(t, []note{{Owner: "bob", Text: "b"}, {Owner: "bob", Text: "c"}}, vals)

	assert.Nil(t, b.Delete(db, k1))
	var none []*note
	keys, err = b.ByIndex(db, "owner", []byte("alice"), &none)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
	assert.Equal(t, 0, len(none))

	_, err = b.ByIndex(db, "unknown", []byte("alice"), &none)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = b.ByIndex(db, "owner", []byte("alice"), none)
	assert.IsErr(t, errors.ErrType, err)
	var wrong []*other
	_, err = b.ByIndex(db, "owner", []byte("alice"), &wrong)
	assert.IsErr(t, errors.ErrType, err)
}

func TestUniqueIndex(t *testing.T) {
	db := store.NewMemDB()
	b := NewModelBucket("notes", &note{}, WithIndex("owner", ownerIndex, true))

	_, err := b.Put(db, []byte("one"), &note{Owner: "alice"})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("two"), &note{Owner: "alice"})
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Saving the same entity again does not conflict with itself.
	_, err = b.Put(db, []byte("one"), &note{Owner: "alice", Text: "updated"})
	assert.Nil(t, err)
}

func TestBucketNameAndIndexPanics(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X", &note{}) })
	assert.Panics(t, func() {
		NewModelBucket("notes", &note{},
			WithIndex("owner", ownerIndex, false),
			WithIndex("owner", ownerIndex, true))
	})
}
