package escrow

import "github.com/djrtwo/simple-contracts/errors"

var (
	// ErrUnauthorizedCaller is returned when the caller does not hold the
	// role required by the operation.
	ErrUnauthorizedCaller = errors.Register(1010, "unauthorized caller")

	// ErrNotYetExpired is returned when an agreement is voided before its
	// expiration time.
	ErrNotYetExpired = errors.Register(1011, "not yet expired")
)
