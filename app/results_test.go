package app

import (
	"io"
	"testing"

	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/x/escrow"
	"github.com/stretchr/testify/assert"
)

func TestErrorResult(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"registered error": {
			err:      errors.Wrap(errors.Wrap(errors.ErrNotFound, "foo"), "bar"),
			wantCode: errors.ErrNotFound.Code(),
			wantLog:  "bar: foo: not found",
		},
		"extension error": {
			err:      escrow.ErrNotYetExpired.New("expires at 1000"),
			wantCode: escrow.ErrNotYetExpired.Code(),
			wantLog:  "expires at 1000: not yet expired",
		},
		"stdlib error is hidden": {
			err:      errors.Wrap(io.EOF, "cannot read file"),
			wantCode: errors.CodeInternal,
			wantLog:  "internal error",
		},
		"stdlib error message without stack trace in debug mode": {
			err:      errors.Wrap(io.EOF, "cannot read file"),
			debug:    true,
			wantCode: errors.CodeInternal,
			wantLog:  "cannot read file: EOF",
		},
		"panic keeps its code but not its message": {
			err:      errors.Wrap(errors.ErrPanic, "runtime error: index out of range"),
			wantCode: errors.ErrPanic.Code(),
			wantLog:  "internal error",
		},
		"panic message in debug mode": {
			err:      errors.Wrap(errors.ErrPanic, "boom"),
			debug:    true,
			wantCode: errors.ErrPanic.Code(),
			wantLog:  "boom: panic",
		},
		"validation errors report the first code": {
			err:      errors.Append(errors.Wrap(errors.ErrMetadata, "metadata"), errors.ErrEmpty),
			wantCode: errors.ErrMetadata.Code(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := errorResult(tc.err, tc.debug)
			assert.False(t, res.IsOK())
			assert.Equal(t, tc.wantCode, res.Code)
			if tc.wantLog != "" {
				assert.Equal(t, tc.wantLog, res.Log)
			}
			assert.Nil(t, res.Data)
		})
	}
}
