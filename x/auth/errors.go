package auth

import "github.com/djrtwo/simple-contracts/errors"

// ErrInvalidSequence is returned when a signature was made for a sequence
// value other than the current one.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
