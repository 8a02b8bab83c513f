package auth

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where the signers are stored.
const BucketName = "signers"

// maxSequenceValue is the greatest nonce a javascript client can represent
// without loss of precision.
const maxSequenceValue = (1 << 53) - 1

// Signer is the state kept for every public key that signed a transaction.
type Signer struct {
	Metadata *contracts.Metadata
	PubKey   []byte
	Sequence int64
}

var _ orm.Model = (*Signer)(nil)

// Marshal serializes the signer with the model codec.
func (s *Signer) Marshal() ([]byte, error) {
	return orm.MarshalModel(s)
}

// Unmarshal loads the signer from its serialized form.
func (s *Signer) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, s)
}

func (s *Signer) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(s.Metadata.Validate(), "metadata"))
	if len(s.PubKey) != ed25519.PublicKeySize {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize))
	}
	if s.Sequence < 0 {
		errs = errors.Append(errs, errors.Wrap(ErrInvalidSequence, "negative"))
	}
	return errs
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value.
func (s *Signer) CheckAndIncrementSequence(expected int64) error {
	if s.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", s.Sequence, expected)
	}
	next := s.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	s.Sequence = next
	return nil
}

// Condition returns the condition fulfilled by a signature of given key.
func Condition(pubKey ed25519.PublicKey) contracts.Condition {
	return contracts.NewCondition("sigs", "ed25519", pubKey)
}

// NewBucket returns the bucket of signers, keyed by the address of their
// condition.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Signer{})
}

// RegisterQuery exposes the signers under "/signers".
func RegisterQuery(qr contracts.QueryRouter) {
	NewBucket().Register("", qr)
}
