package orm

import (
	"testing"

	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
)

func TestMultiRef(t *testing.T) {
	m := new(MultiRef)
	for _, ref := range []string{"b", "c", "a"} {
		assert.Nil(t, m.Add([]byte(ref)))
	}
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var loaded MultiRef
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, m.Refs, loaded.Refs)
}
