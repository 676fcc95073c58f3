package utils

import (
	"strconv"
	"time"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions by message path
// and result code, and observes how long they took.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ custody.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "custody",
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	if err := reg.Register(m.txs); err != nil {
		return nil, errors.Wrap(err, "register tx counter")
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, errors.Wrap(err, "register tx duration")
	}
	return m, nil
}

// Check observes the check call.
func (m *Metrics) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver observes the deliver call.
func (m *Metrics) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(phase string, tx custody.Tx, start time.Time, err error) {
	path := custody.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
