package escrow

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
)

const (
	pathCreateMsg  = "escrow/create"
	pathConfirmMsg = "escrow/confirm"
	pathVoidMsg    = "escrow/void"
)

// CreateMsg creates an agreement and moves the amount from the sender to
// the agreement account.
type CreateMsg struct {
	Metadata *contracts.Metadata `json:"metadata"`
	// Sender defaults to the main signer of the transaction.
	Sender     contracts.Address  `json:"sender,omitempty"`
	Recipient  contracts.Address  `json:"recipient"`
	Arbitrator contracts.Address  `json:"arbitrator"`
	Amount     coin.Coins         `json:"amount"`
	Expiration contracts.UnixTime `json:"expiration"`
	Memo       string             `json:"memo,omitempty"`
}

// ConfirmMsg confirms an agreement on behalf of the caller.
type ConfirmMsg struct {
	Metadata *contracts.Metadata `json:"metadata"`
	EscrowID []byte              `json:"escrow_id"`
	// Caller defaults to the main signer of the transaction.
	Caller contracts.Address `json:"caller,omitempty"`
}

// VoidMsg returns the held funds of an expired agreement to the sender.
type VoidMsg struct {
	Metadata *contracts.Metadata `json:"metadata"`
	EscrowID []byte              `json:"escrow_id"`
	// Caller defaults to the main signer of the transaction.
	Caller contracts.Address `json:"caller,omitempty"`
}

var (
	_ contracts.Msg = (*CreateMsg)(nil)
	_ contracts.Msg = (*ConfirmMsg)(nil)
	_ contracts.Msg = (*VoidMsg)(nil)
)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

// Validate makes sure that this is sensible. An empty amount is valid and
// creates an agreement holding nothing.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if m.Sender != nil {
		errs = errors.Append(errs, errors.Wrap(m.Sender.Validate(), "sender"))
	}
	errs = errors.Append(errs, errors.Wrap(m.Recipient.Validate(), "recipient"))
	errs = errors.Append(errs, errors.Wrap(m.Arbitrator.Validate(), "arbitrator"))
	errs = errors.Append(errs, errors.Wrap(validateExpiration(m.Expiration), "expiration"))
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "memo %s", m.Memo))
	}
	errs = errors.Append(errs, errors.Wrap(validateAmount(m.Amount), "amount"))
	return errs
}

func (ConfirmMsg) Path() string {
	return pathConfirmMsg
}

func (m *ConfirmMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *ConfirmMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *ConfirmMsg) Validate() error {
	return validateCall(m.Metadata, m.EscrowID, m.Caller)
}

func (VoidMsg) Path() string {
	return pathVoidMsg
}

func (m *VoidMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *VoidMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *VoidMsg) Validate() error {
	return validateCall(m.Metadata, m.EscrowID, m.Caller)
}

func validateCall(meta *contracts.Metadata, id []byte, caller contracts.Address) error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(meta.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(orm.ValidateSequence(id), "escrow id"))
	if caller != nil {
		errs = errors.Append(errs, errors.Wrap(caller.Validate(), "caller"))
	}
	return errs
}

// validateAmount requires a single asset. Agreements hold one currency
// only.
func validateAmount(amount coin.Coins) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if amount.Count() > 1 {
		return errors.Wrapf(errors.ErrCurrency, "single currency required, got %s", amount)
	}
	return nil
}
