package utils

import (
	"time"

	contracts "github.com/djrtwo/simple-contracts"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ contracts.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Checker) (*contracts.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (*contracts.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx contracts.Context, tx contracts.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := contracts.GetLogger(ctx).With(
		"path", contracts.GetPath(tx),
		"duration", delta/time.Microsecond)
	if height, ok := contracts.GetHeight(ctx); ok {
		logger = logger.With("height", height)
	}

	// Message can be empty, the entry is still emitted for the other
	// attributes.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
