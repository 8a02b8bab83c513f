package orm

import (
	"testing"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/store"
)

func TestBucketQuery(t *testing.T) {
	db := store.NewMemDB()
	b := NewModelBucket("notes", &note{}, WithIndex("owner", ownerIndex, false))
	qr := contracts.NewQueryRouter()
	b.Register("", qr)

	k1, err := b.Put(db, nil, &note{Owner: "alice", Text: "a"})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &note{Owner: "alice", Text: "b"})
	assert.Nil(t, err)

	res, err := qr.Handler("/notes").Query(db, contracts.KeyQueryMod, k1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	var n note
	assert.Nil(t, n.Unmarshal(res[0].Value))
	assert.Equal(t, "a", n.Text)

	res, err = qr.Handler("/notes").Query(db, contracts.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = qr.Handler("/notes/owner").Query(db, contracts.KeyQueryMod, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = qr.Handler("/notes").Query(db, contracts.PrefixQueryMod, nil)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = qr.Handler("/unknown").Query(db, contracts.KeyQueryMod, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}
