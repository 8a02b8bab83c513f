package auth

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"golang.org/x/crypto/ed25519"
)

// StdSignature is a signature of the transaction sign bytes, made for the
// given sequence of the signer.
type StdSignature struct {
	PubKey    []byte `json:"pubkey"`
	Signature []byte `json:"signature"`
	Sequence  int64  `json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	switch {
	case s == nil:
		return errors.Wrap(errors.ErrEmpty, "signature")
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case len(s.PubKey) != ed25519.PublicKeySize:
		return errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	case len(s.Signature) != ed25519.SignatureSize:
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	return nil
}

// SignedTx is a transaction carrying signatures, that can be verified by
// the Decorator.
type SignedTx interface {
	contracts.Tx

	// GetSignBytes returns the canonical byte representation of the
	// transaction content that is signed.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of all signers.
	GetSignatures() []*StdSignature
}
