package escrow

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
	"github.com/djrtwo/simple-contracts/x"
	"github.com/djrtwo/simple-contracts/x/cash"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r contracts.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	bucket := NewBucket()
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket, cashctrl: cashctrl})
	r.Handle(&ConfirmMsg{}, ConfirmHandler{auth: auth, bucket: bucket, cashctrl: cashctrl})
	r.Handle(&VoidMsg{}, VoidHandler{auth: auth, bucket: bucket, cashctrl: cashctrl})
}

// CreateHandler creates agreements and funds them from the sender.
type CreateHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	cashctrl cash.Controller
}

var _ contracts.Handler = CreateHandler{}

// Check verifies the message, that the sender approved it and that the
// sender can fund the agreement.
func (h CreateHandler) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	have, err := h.cashctrl.Balance(db, sender)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read sender balance")
	}
	for _, c := range msg.Amount {
		if !have.Contains(*c) {
			return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s, needs %s", sender, have, c)
		}
	}
	return &contracts.CheckResult{}, nil
}

// Deliver stores the agreement and moves the amount from the sender to the
// agreement account. The id of the new agreement is returned as data.
func (h CreateHandler) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.bucket.Sequence().NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire escrow id")
	}
	agreement := NewAgreement(id, sender, msg.Recipient, msg.Arbitrator, msg.Expiration, msg.Memo)
	if _, err := h.bucket.Put(db, id, agreement); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	if err := cash.MoveCoins(db, h.cashctrl, sender, agreement.Address, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot fund escrow")
	}
	contracts.GetLogger(ctx).Info("escrow created",
		"id", id, "sender", sender, "amount", msg.Amount)
	return &contracts.DeliverResult{Data: id}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*CreateMsg, contracts.Address, error) {
	var msg CreateMsg
	if err := contracts.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := resolveCaller(ctx, h.auth, msg.Sender)
	if err != nil {
		return nil, nil, errors.Wrap(err, "sender")
	}
	return &msg, sender, nil
}

// ConfirmHandler records the confirmation of a party and releases the held
// funds to the recipient once two parties confirmed.
type ConfirmHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	cashctrl cash.Controller
}

var _ contracts.Handler = ConfirmHandler{}

// Check verifies the caller is a party of the agreement.
func (h ConfirmHandler) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &contracts.CheckResult{}, nil
}

// Deliver saves the confirmation first. Funds are moved last, only when the
// agreement is confirmed and still holds anything.
func (h ConfirmHandler) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	msg, agreement, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, msg.EscrowID, agreement); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if !agreement.IsConfirmed() {
		return &contracts.DeliverResult{}, nil
	}

	held, err := h.cashctrl.Balance(db, agreement.Address)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read escrow balance")
	}
	if held.IsEmpty() {
		return &contracts.DeliverResult{}, nil
	}
	if err := cash.MoveCoins(db, h.cashctrl, agreement.Address, agreement.Recipient, held); err != nil {
		return nil, errors.Wrap(err, "cannot release escrow")
	}
	contracts.GetLogger(ctx).Info("escrow released",
		"id", msg.EscrowID, "recipient", agreement.Recipient, "amount", held)
	return &contracts.DeliverResult{}, nil
}

// validate loads the agreement and applies the confirmation of the caller
// on it. The agreement is not stored.
func (h ConfirmHandler) validate(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*ConfirmMsg, *Agreement, error) {
	var msg ConfirmMsg
	if err := contracts.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := resolveCaller(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, nil, errors.Wrap(err, "caller")
	}
	var agreement Agreement
	if err := h.bucket.One(db, msg.EscrowID, &agreement); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load escrow")
	}
	if err := agreement.Confirm(caller); err != nil {
		return nil, nil, err
	}
	return &msg, &agreement, nil
}

// VoidHandler returns the held funds of an expired agreement to the
// sender.
type VoidHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	cashctrl cash.Controller
}

var _ contracts.Handler = VoidHandler{}

// Check verifies the sender calls an expired agreement.
func (h VoidHandler) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &contracts.CheckResult{}, nil
}

// Deliver moves whatever the agreement holds back to the sender. Voiding a
// settled agreement moves nothing.
func (h VoidHandler) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	msg, agreement, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	held, err := h.cashctrl.Balance(db, agreement.Address)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read escrow balance")
	}
	if held.IsEmpty() {
		return &contracts.DeliverResult{}, nil
	}
	if err := cash.MoveCoins(db, h.cashctrl, agreement.Address, agreement.Sender, held); err != nil {
		return nil, errors.Wrap(err, "cannot void escrow")
	}
	contracts.GetLogger(ctx).Info("escrow voided",
		"id", msg.EscrowID, "sender", agreement.Sender, "amount", held)
	return &contracts.DeliverResult{}, nil
}

func (h VoidHandler) validate(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*VoidMsg, *Agreement, error) {
	var msg VoidMsg
	if err := contracts.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := resolveCaller(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, nil, errors.Wrap(err, "caller")
	}
	var agreement Agreement
	if err := h.bucket.One(db, msg.EscrowID, &agreement); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load escrow")
	}
	if err := agreement.CanVoid(ctx, caller); err != nil {
		return nil, nil, err
	}
	return &msg, &agreement, nil
}

// resolveCaller returns the explicitly requested address if it is
// authenticated, otherwise the main signer.
func resolveCaller(ctx contracts.Context, auth x.Authenticator, requested contracts.Address) (contracts.Address, error) {
	if requested != nil {
		if !auth.HasAddress(ctx, requested) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", requested)
		}
		return requested, nil
	}
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}
