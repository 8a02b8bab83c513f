/*
Package x holds the interfaces shared by the extensions, most importantly the
Authenticator that resolves which identities approved the current
transaction.
*/
package x

import (
	contracts "github.com/djrtwo/simple-contracts"
)

// Authenticator extracts authentication information from the context.
// Handlers receive it in their constructor so that the authentication
// system can be replaced without touching them.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the current
	// transaction. The first one is the main signer.
	GetConditions(contracts.Context) []contracts.Condition
	// HasAddress returns true if any fulfilled condition matches the
	// address.
	HasAddress(contracts.Context, contracts.Address) bool
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx contracts.Context, auth Authenticator) contracts.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
