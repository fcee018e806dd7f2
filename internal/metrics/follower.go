package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerFetchTipTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "fetch_tip_total",
		Help:      "Count of attempts to fetch the node tip.",
	}, []string{"wallet", "status"})

	followerFetchTipDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "fetch_tip_duration_seconds",
		Help:      "Duration of fetching the node tip.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"wallet", "status"})

	followerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "process_batch_total",
		Help:      "Count of block batches applied to the wallet.",
	}, []string{"wallet", "status"})

	followerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of fetching and applying a block batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"wallet", "status"})

	followerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "follower",
		Name:      "process_batch_size",
		Help:      "Number of blocks per follower batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"wallet"})
)

// Follower tracks metrics of the block follower.
type Follower struct {
	walletID string
}

// NewFollower constructs a Follower collector.
func NewFollower(walletID string) *Follower {
	if walletID == "" {
		walletID = unknown
	}
	return &Follower{walletID: walletID}
}

// ObserveFetchTip records a tip fetch outcome and duration.
func (m Follower) ObserveFetchTip(err error, started time.Time) {
	status := statusOf(err)
	followerFetchTipTotal.WithLabelValues(m.walletID, status).Inc()
	followerFetchTipDuration.WithLabelValues(m.walletID, status).Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a block batch.
func (m Follower) ObserveProcessBatch(err error, blocks int, started time.Time) {
	status := statusOf(err)
	followerProcessBatchTotal.WithLabelValues(m.walletID, status).Inc()
	followerProcessBatchDuration.WithLabelValues(m.walletID, status).Observe(time.Since(started).Seconds())
	followerProcessBatchSize.WithLabelValues(m.walletID).Observe(float64(blocks))
}
