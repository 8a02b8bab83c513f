package escrow

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
)

// BucketName is where the agreements are stored.
const BucketName = "escrow"

const maxMemoSize int = 128

// Agreement is the state of a single escrow. Parties and expiration never
// change after creation. The held balance is the cash wallet at Address.
type Agreement struct {
	Metadata            *contracts.Metadata `json:"metadata"`
	Sender              contracts.Address   `json:"sender"`
	Recipient           contracts.Address   `json:"recipient"`
	Arbitrator          contracts.Address   `json:"arbitrator"`
	Expiration          contracts.UnixTime  `json:"expiration"`
	SenderConfirmed     bool                `json:"sender_confirmed"`
	RecipientConfirmed  bool                `json:"recipient_confirmed"`
	ArbitratorConfirmed bool                `json:"arbitrator_confirmed"`
	Memo                string              `json:"memo,omitempty"`
	// Address is the account holding the escrowed funds.
	Address contracts.Address `json:"address"`
}

var _ orm.Model = (*Agreement)(nil)

// NewAgreement returns an agreement with all confirmations unset. The id is
// the key under which the agreement is stored.
func NewAgreement(
	id []byte,
	sender contracts.Address,
	recipient contracts.Address,
	arbitrator contracts.Address,
	expiration contracts.UnixTime,
	memo string,
) *Agreement {
	return &Agreement{
		Metadata:   &contracts.Metadata{Schema: 1},
		Sender:     sender,
		Recipient:  recipient,
		Arbitrator: arbitrator,
		Expiration: expiration,
		Memo:       memo,
		Address:    Condition(id).Address(),
	}
}

// Marshal serializes the agreement with the model codec.
func (a *Agreement) Marshal() ([]byte, error) {
	return orm.MarshalModel(a)
}

// Unmarshal loads the agreement from its serialized form.
func (a *Agreement) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, a)
}

// IsActor returns true if the address holds any of the three roles.
func (a *Agreement) IsActor(addr contracts.Address) bool {
	return addr.Equals(a.Sender) || addr.Equals(a.Recipient) || addr.Equals(a.Arbitrator)
}

// HasConfirmed returns true if the address confirmed the agreement. An
// address that is not an actor never confirms.
func (a *Agreement) HasConfirmed(addr contracts.Address) bool {
	return (a.SenderConfirmed && addr.Equals(a.Sender)) ||
		(a.RecipientConfirmed && addr.Equals(a.Recipient)) ||
		(a.ArbitratorConfirmed && addr.Equals(a.Arbitrator))
}

// IsConfirmed returns true once at least two of the three roles confirmed.
func (a *Agreement) IsConfirmed() bool {
	var n int
	for _, ok := range []bool{a.SenderConfirmed, a.RecipientConfirmed, a.ArbitratorConfirmed} {
		if ok {
			n++
		}
	}
	return n >= 2
}

// Confirm marks every role bound to the caller as confirmed. Confirming
// again is a no-op.
func (a *Agreement) Confirm(caller contracts.Address) error {
	if !a.IsActor(caller) {
		return errors.Wrapf(ErrUnauthorizedCaller, "%s is not a party", caller)
	}
	if caller.Equals(a.Sender) {
		a.SenderConfirmed = true
	}
	if caller.Equals(a.Recipient) {
		a.RecipientConfirmed = true
	}
	if caller.Equals(a.Arbitrator) {
		a.ArbitratorConfirmed = true
	}
	return nil
}

// CanVoid returns an error unless the caller is the sender and the
// agreement expired as of the block time in the context.
func (a *Agreement) CanVoid(ctx contracts.Context, caller contracts.Address) error {
	if !caller.Equals(a.Sender) {
		return errors.Wrapf(ErrUnauthorizedCaller, "%s is not the sender", caller)
	}
	if !contracts.IsExpired(ctx, a.Expiration) {
		return errors.Wrapf(ErrNotYetExpired, "expires at %s", a.Expiration)
	}
	return nil
}

// Validate ensures the agreement is valid
func (a *Agreement) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(a.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(a.Sender.Validate(), "sender"))
	errs = errors.Append(errs, errors.Wrap(a.Recipient.Validate(), "recipient"))
	errs = errors.Append(errs, errors.Wrap(a.Arbitrator.Validate(), "arbitrator"))
	errs = errors.Append(errs, errors.Wrap(validateExpiration(a.Expiration), "expiration"))
	if len(a.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "memo %s", a.Memo))
	}
	errs = errors.Append(errs, errors.Wrap(a.Address.Validate(), "address"))
	return errs
}

// Copy returns an independent copy of the agreement.
func (a *Agreement) Copy() *Agreement {
	return &Agreement{
		Metadata:            a.Metadata.Copy(),
		Sender:              a.Sender.Clone(),
		Recipient:           a.Recipient.Clone(),
		Arbitrator:          a.Arbitrator.Clone(),
		Expiration:          a.Expiration,
		SenderConfirmed:     a.SenderConfirmed,
		RecipientConfirmed:  a.RecipientConfirmed,
		ArbitratorConfirmed: a.ArbitratorConfirmed,
		Memo:                a.Memo,
		Address:             a.Address.Clone(),
	}
}

func validateExpiration(t contracts.UnixTime) error {
	if t == 0 {
		// Zero dates to 1970-01-01 and most likely means the value was
		// never set.
		return errors.Wrap(errors.ErrEmpty, "expiration is required")
	}
	return t.Validate()
}

// Condition calculates the condition of the account holding the funds of
// the agreement with given id.
func Condition(id []byte) contracts.Condition {
	return contracts.NewCondition("escrow", "seq", id)
}

// NewBucket returns the agreement bucket, keyed by a sequence id and indexed
// by each party.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Agreement{},
		orm.WithIndex("sender", idxSender, false),
		orm.WithIndex("recipient", idxRecipient, false),
		orm.WithIndex("arbitrator", idxArbitrator, false),
	)
}

// RegisterQuery registers the agreement bucket as "/escrows" and its
// indexes as "/escrows/sender", "/escrows/recipient" and
// "/escrows/arbitrator".
func RegisterQuery(qr contracts.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func toAgreement(m orm.Model) (*Agreement, error) {
	a, ok := m.(*Agreement)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return a, nil
}

func idxSender(m orm.Model) ([]byte, error) {
	a, err := toAgreement(m)
	if err != nil {
		return nil, err
	}
	return a.Sender, nil
}

func idxRecipient(m orm.Model) ([]byte, error) {
	a, err := toAgreement(m)
	if err != nil {
		return nil, err
	}
	return a.Recipient, nil
}

func idxArbitrator(m orm.Model) ([]byte, error) {
	a, err := toAgreement(m)
	if err != nil {
		return nil, err
	}
	return a.Arbitrator, nil
}
