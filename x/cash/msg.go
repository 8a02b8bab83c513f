package cash

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source to the destination address.
type SendMsg struct {
	Metadata    *contracts.Metadata `json:"metadata"`
	Source      contracts.Address   `json:"source"`
	Destination contracts.Address   `json:"destination"`
	Amount      *coin.Coin          `json:"amount"`
	Memo        string              `json:"memo,omitempty"`
}

var _ contracts.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", m.Amount))
	} else {
		errs = errors.Append(errs, errors.Wrap(m.Amount.Validate(), "amount"))
	}
	errs = errors.Append(errs, errors.Wrap(m.Source.Validate(), "source"))
	errs = errors.Append(errs, errors.Wrap(m.Destination.Validate(), "destination"))
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}
