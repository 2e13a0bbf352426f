package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline counters exposed at /metrics.
type Metrics struct {
	AuthorizationsIssued prometheus.Counter
	ReplaysRejected      prometheus.Counter
	PurchasesSettled     *prometheus.CounterVec // label: settlement status
	ResolverFallbacks    prometheus.Counter
	SettlementFailures   prometheus.Counter
}

// New registers the pipeline counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthorizationsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mysterybox_authorizations_issued_total",
			Help: "Burn authorizations signed and handed to clients.",
		}),
		ReplaysRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mysterybox_replays_rejected_total",
			Help: "Requests rejected by the replay guard.",
		}),
		PurchasesSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mysterybox_purchases_total",
			Help: "Completed purchase pipeline runs by settlement status.",
		}, []string{"status"}),
		ResolverFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mysterybox_resolver_fallbacks_total",
			Help: "Prize resolutions that exhausted the retry ceiling.",
		}),
		SettlementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mysterybox_settlement_failures_total",
			Help: "Payout or mint dispatches that failed after a verified burn.",
		}),
	}

	reg.MustRegister(
		m.AuthorizationsIssued,
		m.ReplaysRejected,
		m.PurchasesSettled,
		m.ResolverFallbacks,
		m.SettlementFailures,
	)
	return m
}

// NewNop returns metrics bound to a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
