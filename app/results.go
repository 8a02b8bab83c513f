package app

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
)

// Result is returned to the submitter of a transaction. A zero Code means
// the transaction was accepted. Otherwise Code is the code of the
// registered error that failed it and Log describes the failure.
type Result struct {
	Code uint32
	Log  string
	Data []byte
}

// IsOK returns true if the transaction was accepted.
func (r Result) IsOK() bool {
	return r.Code == errors.CodeOK
}

func checkResult(res *contracts.CheckResult) Result {
	if res == nil {
		return Result{}
	}
	return Result{Log: res.Log, Data: res.Data}
}

func deliverResult(res *contracts.DeliverResult) Result {
	if res == nil {
		return Result{}
	}
	return Result{Log: res.Log, Data: res.Data}
}

// errorResult reports a failed transaction. Outside of debug mode the
// message of an internal error or a panic is replaced by a generic one,
// the code is always kept.
func errorResult(err error, debug bool) Result {
	return Result{
		Code: errors.CodeOf(err),
		Log:  errors.Redact(err, debug).Error(),
	}
}

// UnmarshalOneResult unmarshals the first of the models into o. It does
// nothing if there are no results.
func UnmarshalOneResult(models []contracts.Model, o contracts.Persistent) error {
	if len(models) == 0 {
		return nil
	}
	return o.Unmarshal(models[0].Value)
}
