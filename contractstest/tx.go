package contractstest

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/x/auth"
	"golang.org/x/crypto/ed25519"
)

// Tx is a transaction carrying a single message and optional signatures.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg contracts.Msg
	// Err if set is returned by GetMsg.
	Err error
	// Signatures are verified by the auth decorator.
	Signatures []*auth.StdSignature
}

var (
	_ contracts.Tx  = (*Tx)(nil)
	_ auth.SignedTx = (*Tx)(nil)
)

func (tx *Tx) GetMsg() (contracts.Msg, error) {
	return tx.Msg, tx.Err
}

// GetSignBytes returns the serialized message.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.Msg == nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) GetSignatures() []*auth.StdSignature {
	return tx.Signatures
}

// Sign appends a signature of the key for given chain and sequence.
func (tx *Tx) Sign(key ed25519.PrivateKey, chainID string, seq int64) error {
	sig, err := auth.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Msg is a mock message routed by RoutePath.
type Msg struct {
	// RoutePath is returned by Path, consumed by the router.
	RoutePath string
	// Serialized is the serialized form of this message.
	Serialized []byte
	// Err if set is returned by every method call.
	Err error
}

var _ contracts.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
