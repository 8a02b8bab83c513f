package utils

import (
	"time"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator counting processed transactions per message path
// and result, and measuring how long the delivery took.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ contracts.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors
// with given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Transactions processed, segmented by mode, message path and result.",
		}, []string{"mode", "path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "deliver_duration_seconds",
			Help:      "Latency distribution of transaction delivery.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrapf(errors.ErrDuplicate, "metrics: %s", err)
		}
	}
	return m, nil
}

// Check counts the checked transactions.
func (m Metrics) Check(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Checker) (*contracts.CheckResult, error) {
	res, err := next.Check(ctx, store, tx)
	m.txs.WithLabelValues("check", contracts.GetPath(tx), resultLabel(err)).Inc()
	return res, err
}

// Deliver counts the delivered transactions and observes the time spent.
func (m Metrics) Deliver(ctx contracts.Context, store contracts.KVStore, tx contracts.Tx, next contracts.Deliverer) (*contracts.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	path := contracts.GetPath(tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.txs.WithLabelValues("deliver", path, resultLabel(err)).Inc()
	return res, err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.ErrPanic.Is(err):
		return "panic"
	default:
		return "error"
	}
}
