package contractstest

import (
	"context"
	"fmt"

	contracts "github.com/djrtwo/simple-contracts"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates all referenced conditions. Signer is a shortcut for the
// common single signer case and is the main signer when set.
type Auth struct {
	Signer  contracts.Condition
	Signers []contracts.Condition
}

func (a *Auth) GetConditions(contracts.Context) []contracts.Condition {
	if a.Signer != nil {
		return append([]contracts.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx contracts.Context, addr contracts.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface that keeps the
// conditions in the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx contracts.Context, conds ...contracts.Condition) contracts.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx contracts.Context) []contracts.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]contracts.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []contracts.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx contracts.Context, addr contracts.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
