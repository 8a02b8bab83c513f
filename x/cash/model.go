package cash

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the content of a wallet.
type Set struct {
	Metadata *contracts.Metadata `json:"metadata"`
	Coins    coin.Coins          `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

// Marshal serializes the wallet with the model codec.
func (s *Set) Marshal() ([]byte, error) {
	return orm.MarshalModel(s)
}

// Unmarshal loads the wallet from its serialized form.
func (s *Set) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, s)
}

// Validate requires valid metadata and a normalized, non negative set of
// coins.
func (s *Set) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(s.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(s.Coins.Validate(), "coins"))
	if !s.Coins.IsNonNegative() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "negative balance"))
	}
	return errs
}

// NewBucket returns the wallet bucket, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr contracts.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
