package auth

import (
	"context"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/x"
)

type contextKey int // local to the auth module

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this package can add signers.
func withSigners(ctx contracts.Context, signers []contracts.Condition) contracts.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reports the conditions of the verified signers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context. May be empty.
func (Authenticate) GetConditions(ctx contracts.Context) []contracts.Condition {
	val, _ := ctx.Value(contextKeySigners).([]contracts.Condition)
	return val
}

// HasAddress returns true if any signer matches the address.
func (a Authenticate) HasAddress(ctx contracts.Context, addr contracts.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
