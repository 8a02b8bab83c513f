package orm

import (
	"encoding/binary"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Sequence maintains a counter stored in the database. Each value is
// greater than the previous one, both as an integer and when the 8 byte
// encoding is compared with bytes.Compare.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter stored under
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the sequence and returns the new value as 8 bytes.
func (s Sequence) NextVal(db contracts.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	val, err := DecodeSequence(raw)
	if err != nil {
		return nil, err
	}
	next := EncodeSequence(val + 1)
	if err := db.Set(s.id, next); err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	return next, nil
}

// DecodeSequence reads the 8 byte big endian representation. Missing value
// is zero.
func DecodeSequence(bz []byte) (int64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	return int64(binary.BigEndian.Uint64(bz)), nil
}

// EncodeSequence returns the 8 byte big endian representation of val.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence returns an error if given value is not a valid, non zero
// sequence value.
func ValidateSequence(id []byte) error {
	switch val, err := DecodeSequence(id); {
	case err != nil:
		return err
	case val <= 0:
		return errors.Wrap(errors.ErrInput, "sequence must be greater than zero")
	}
	return nil
}
