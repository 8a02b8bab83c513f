package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is provided, nil is returned. If a single error is provided
// it is returned unchanged. Otherwise a group is returned that matches any
// root error its members match when tested with Error.Is.
func Append(errs ...error) error {
	var me multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			me = append(me, m...)
			continue
		}
		me = append(me, err)
	}
	switch len(me) {
	case 0:
		return nil
	case 1:
		return me[0]
	default:
		return me
	}
}

// unpacker is implemented by errors that group many errors together.
type unpacker interface {
	Unpack() []error
}

// multiErr is an error group. Code of the first error represents the whole
// group to keep the fail-fast semantics of a single error.
type multiErr []error

var (
	_ coder    = multiErr(nil)
	_ unpacker = multiErr(nil)
	_ error    = multiErr(nil)
)

func (e multiErr) Unpack() []error {
	return e
}

func (e multiErr) Error() string {
	points := make([]string, len(e))
	for i, err := range e {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e), strings.Join(points, "\n\t"))
}

func (e multiErr) Code() uint32 {
	if len(e) == 0 {
		return CodeOK
	}
	return CodeOf(e[0])
}
