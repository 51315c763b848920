package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostic_submissions_accepted_total",
			Help: "Total number of accepted diagnostic submissions",
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostic_submissions_rejected_total",
			Help: "Total number of rejected diagnostic submissions",
		},
		[]string{"reason"},
	)

	SubmissionsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostic_submissions_throttled_total",
			Help: "Total number of submissions rejected by the cooldown",
		},
	)

	BattlecardsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battlecards_generated_total",
			Help: "Total number of battlecards generated",
		},
		[]string{"mode"}, // llm | fallback
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "battlecard_generation_duration_seconds",
			Help: "Duration of battlecard generation in seconds",
		},
	)

	DeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battlecard_delivery_failures_total",
			Help: "Total number of delivery fan-out sink failures",
		},
		[]string{"sink"},
	)

	PipelineQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_queue_depth",
			Help: "Number of submissions waiting in the background queue",
		},
	)
)
