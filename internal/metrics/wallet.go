package metrics

import (
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletApplyBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "apply_block_total",
		Help:      "Count of blocks applied to the wallet.",
	}, []string{"wallet", "status"})

	walletApplyBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "apply_block_duration_seconds",
		Help:      "Duration of applying a block to the wallet.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"wallet", "status"})

	walletRelevantTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "relevant_transactions_total",
		Help:      "Count of transactions touching wallet addresses.",
	}, []string{"wallet"})

	walletAddressesDerivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "addresses_derived_total",
		Help:      "Count of addresses derived by margin top-ups.",
	}, []string{"wallet", "account"})

	walletBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "wallet",
		Name:      "balance_satoshis",
		Help:      "Account balance in satoshis by account index.",
	}, []string{"wallet", "account", "kind"})
)

// Wallet tracks metrics of the wallet engine.
type Wallet struct {
	walletID string
}

// NewWallet constructs a Wallet collector.
func NewWallet(walletID string) *Wallet {
	if walletID == "" {
		walletID = unknown
	}
	return &Wallet{walletID: walletID}
}

// ObserveApplyBlock records one applied block and the relevant transactions it carried.
func (m Wallet) ObserveApplyBlock(err error, relevant int, started time.Time) {
	status := statusOf(err)
	walletApplyBlockTotal.WithLabelValues(m.walletID, status).Inc()
	walletApplyBlockDuration.WithLabelValues(m.walletID, status).Observe(time.Since(started).Seconds())
	if relevant > 0 {
		walletRelevantTransactionsTotal.WithLabelValues(m.walletID).Add(float64(relevant))
	}
}

// ObserveAddressesDerived records addresses added to an account.
func (m Wallet) ObserveAddressesDerived(account uint32, n int) {
	if n <= 0 {
		return
	}
	walletAddressesDerivedTotal.WithLabelValues(m.walletID, accountLabel(account)).Add(float64(n))
}

// SetBalance publishes the current balances of an account.
func (m Wallet) SetBalance(account uint32, balance, available btcutil.Amount) {
	label := accountLabel(account)
	walletBalance.WithLabelValues(m.walletID, label, "balance").Set(float64(balance))
	walletBalance.WithLabelValues(m.walletID, label, "available").Set(float64(available))
}

// accountLabel formats an account index as a label value.
func accountLabel(account uint32) string {
	return strconv.FormatUint(uint64(account), 10)
}
