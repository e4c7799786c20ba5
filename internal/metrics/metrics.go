package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the asset gateway.
type Metrics struct {
	// Compliance verdicts by operation and result
	ComplianceVerdicts *prometheus.CounterVec

	// Reward credits/debits by direction
	RewardMovements *prometheus.CounterVec

	// Staking contracts created and completed
	StakingContracts *prometheus.CounterVec

	// Assets minted by type
	AssetsMinted *prometheus.CounterVec

	// Assets currently locked for minor protection
	AssetsLocked prometheus.Counter

	// HTTP request latency by route and status
	RequestLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all gateway metrics registered
// on the default registry.
func New() *Metrics {
	return &Metrics{
		ComplianceVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dag_compliance_verdicts_total",
			Help: "Total compliance verdicts by operation and result",
		}, []string{"operation", "result"}), // result: "allowed", "denied"

		RewardMovements: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dag_reward_movements_total",
			Help: "Total reward point credits and debits",
		}, []string{"direction"}), // direction: "credit", "debit"

		StakingContracts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dag_staking_contracts_total",
			Help: "Total staking contracts by lifecycle event",
		}, []string{"event"}), // event: "created", "completed", "early_unstaked"

		AssetsMinted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dag_assets_minted_total",
			Help: "Total assets minted by asset type",
		}, []string{"asset_type"}),

		AssetsLocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dag_assets_locked_total",
			Help: "Total assets placed under an age-restriction lock",
		}),

		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dag_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status code",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// IncrementVerdict records a compliance verdict for an operation.
func (m *Metrics) IncrementVerdict(operation string, compliant bool) {
	if m != nil {
		result := "denied"
		if compliant {
			result = "allowed"
		}
		m.ComplianceVerdicts.WithLabelValues(operation, result).Inc()
	}
}

// IncrementRewardMovement records a reward credit or debit.
func (m *Metrics) IncrementRewardMovement(direction string) {
	if m != nil {
		m.RewardMovements.WithLabelValues(direction).Inc()
	}
}

// IncrementStakingEvent records a staking contract lifecycle event.
func (m *Metrics) IncrementStakingEvent(event string) {
	if m != nil {
		m.StakingContracts.WithLabelValues(event).Inc()
	}
}

// IncrementAssetMinted records a minted asset.
func (m *Metrics) IncrementAssetMinted(assetType string) {
	if m != nil {
		m.AssetsMinted.WithLabelValues(assetType).Inc()
	}
}

// IncrementAssetLocked records an asset placed under an age lock.
func (m *Metrics) IncrementAssetLocked() {
	if m != nil {
		m.AssetsLocked.Inc()
	}
}

// ObserveRequest records an HTTP request duration.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
