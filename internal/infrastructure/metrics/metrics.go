package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersSubmitted *prometheus.CounterVec
	TransfersCompleted *prometheus.CounterVec
	TransfersFailed    *prometheus.CounterVec
	TransfersReversed  prometheus.Counter
	TransferAmount     prometheus.Histogram
	RiskDecisions      *prometheus.CounterVec

	// Settlement metrics
	SettlementDuration *prometheus.HistogramVec
	SettlementRetries  *prometheus.CounterVec

	// Scheduler metrics
	SchedulerTicks     prometheus.Counter
	SchedulesExecuted  *prometheus.CounterVec
	SchedulerClaimSkip prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventErrors     prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_transfers_submitted_total",
				Help: "Total number of transfers submitted",
			},
			[]string{"channel"},
		),
		TransfersCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_transfers_completed_total",
				Help: "Total number of transfers completed",
			},
			[]string{"channel"},
		),
		TransfersFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_transfers_failed_total",
				Help: "Total number of transfers failed by reason",
			},
			[]string{"channel", "reason"},
		),
		TransfersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrails_transfers_reversed_total",
			Help: "Total number of debits reversed by compensation",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payrails_transfer_amount_minor_units",
			Help:    "Transfer amounts in minor units",
			Buckets: []float64{1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000},
		}),
		RiskDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_risk_decisions_total",
				Help: "Risk gate decisions by verdict",
			},
			[]string{"decision"},
		),

		SettlementDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payrails_settlement_duration_seconds",
				Help:    "Duration of settlement dispatch per rail",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"channel"},
		),
		SettlementRetries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_settlement_retries_total",
				Help: "Settlement dispatch retries per rail",
			},
			[]string{"channel"},
		),

		SchedulerTicks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrails_scheduler_ticks_total",
			Help: "Total scheduler ticks",
		}),
		SchedulesExecuted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_schedules_executed_total",
				Help: "Schedule executions by outcome",
			},
			[]string{"outcome"},
		),
		SchedulerClaimSkip: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrails_scheduler_claim_skips_total",
			Help: "Ticks skipped because the previous tick is still running",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payrails_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payrails_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrails_events_published_total",
			Help: "Total outbox events published",
		}),
		EventErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payrails_event_errors_total",
			Help: "Total outbox publish errors",
		}),
	}
}
