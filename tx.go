package contracts

import (
	"reflect"

	"github.com/djrtwo/simple-contracts/errors"
)

// Marshaller can serialize itself. Marshal may validate first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can also load itself from the serialized form, which usually
// requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for a state transition. It carries no authentication,
// that is the job of the Tx around it.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "escrow/confirm". It matches [a-zA-Z0-9_\-/]+.
	Path() string

	// Validate checks the message on its own, without access to the
	// store.
	Validate() error
}

// Tx is what a submitter sends: a message plus anything the decorators
// need, like signatures.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or "(missing)" when the
// transaction has none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of the transaction into destination, which
// must be a pointer to the concrete message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "transaction message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination %T is not a pointer", destination)
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if src.Type() != dest.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dest.Elem().Set(src)

	return errors.Wrap(msg.Validate(), "invalid message")
}
