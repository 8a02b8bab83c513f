package cash

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r contracts.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ contracts.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message, that the source approved it and that the
// source holds the amount.
func (h SendHandler) Check(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	have, err := h.control.Balance(db, msg.Source)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read source balance")
	}
	if !have.Contains(*msg.Amount) {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s, needs %s", msg.Source, have, msg.Amount)
	}
	return &contracts.CheckResult{}, nil
}

// Deliver moves the coins from source to destination.
func (h SendHandler) Deliver(ctx contracts.Context, db contracts.KVStore, tx contracts.Tx) (*contracts.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &contracts.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx contracts.Context, tx contracts.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := contracts.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
