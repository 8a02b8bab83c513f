package contractstest

import (
	"crypto/rand"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/x/auth"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a new random ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyCondition returns the condition fulfilled by a signature of the key.
func KeyCondition(key ed25519.PrivateKey) contracts.Condition {
	return auth.Condition(key.Public().(ed25519.PublicKey))
}

// NewCondition returns the condition of a new random key.
func NewCondition() contracts.Condition {
	return KeyCondition(NewKey())
}
