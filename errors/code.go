package errors

import (
	"errors"
	"reflect"
)

const (
	// CodeOK is the code of a successful operation.
	CodeOK uint32 = 0

	// CodeInternal is the code of every error that does not wrap a
	// registered error. Such errors are reported without their message.
	CodeInternal uint32 = 1

	internalMsg = "internal error"
)

type coder interface {
	Code() uint32
}

// CodeOf returns the code of the registered error that err wraps. Errors
// that wrap none, like stdlib errors, are CodeInternal.
func CodeOf(err error) uint32 {
	if errIsNil(err) {
		return CodeOK
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			return CodeInternal
		}
		err = c.Cause()
	}
}

// Redact replaces internal errors and recovered panics with a generic
// error, so that their messages are not shown to a client. In debug mode
// the error is returned unchanged.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || CodeOf(err) == CodeInternal {
		return errors.New(internalMsg)
	}
	return err
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
