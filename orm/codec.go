package orm

import (
	"github.com/djrtwo/simple-contracts/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// MarshalModel serializes a model using the binary amino encoding. Models
// call it from their Marshal method.
func MarshalModel(m interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// UnmarshalModel loads the binary amino representation into given pointer.
func UnmarshalModel(raw []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "unmarshal %T: %s", dest, err)
	}
	return nil
}
