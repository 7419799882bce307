package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	paymentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_transitions_total",
			Help: "Payment status transitions by provider",
		},
		[]string{"provider", "from", "to"},
	)

	paymentRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_rejected_transitions_total",
			Help: "Attempted transitions rejected as invalid",
		},
		[]string{"provider"},
	)

	providerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Outbound provider calls",
		},
		[]string{"provider", "operation", "status"},
	)

	fiscalPrints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiscal_prints_total",
			Help: "Fiscal receipt prints by result",
		},
		[]string{"status"},
	)

	passUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pass_updates_total",
			Help: "Wallet pass update broadcasts",
		},
	)

	pendingPayments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_payments_total",
			Help: "Orders currently awaiting upstream confirmation",
		},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_call_duration_seconds",
			Help:    "Duration of outbound provider calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)
)

type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		m.collectPendingPayments(ctx)
	}
}

func (m *Monitor) collectPendingPayments(ctx context.Context) {
	// Pending orders keep a session hash under payment:order:* until
	// they reach a terminal state or time out.
	keys, _ := m.redis.Keys(ctx, "payment:order:*").Result()
	pendingPayments.Set(float64(len(keys)))
}

// TrackTransition records a payment lifecycle step.
func (m *Monitor) TrackTransition(provider, from, to string) {
	paymentTransitions.WithLabelValues(provider, from, to).Inc()
}

// TrackRejectedTransition records a transition attempt refused as invalid.
func (m *Monitor) TrackRejectedTransition(provider string) {
	paymentRejections.WithLabelValues(provider).Inc()
}

// TrackProviderCall records an outbound provider call and its duration.
func (m *Monitor) TrackProviderCall(provider, operation, status string, duration time.Duration) {
	providerCalls.WithLabelValues(provider, operation, status).Inc()
	providerCallDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// TrackFiscalPrint records a fiscal print attempt.
func (m *Monitor) TrackFiscalPrint(status string) {
	fiscalPrints.WithLabelValues(status).Inc()
}

// TrackPassUpdate records a wallet pass update broadcast.
func (m *Monitor) TrackPassUpdate() {
	passUpdates.Inc()
}
