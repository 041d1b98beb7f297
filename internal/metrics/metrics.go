// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"},
	)

	SanitizerRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_sanitizer_rejections_total",
			Help: "Reasoning outputs rejected by the validator and collapsed to an empty result",
		},
	)

	ReasonerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "reasoner_request_duration_seconds",
			Help: "Duration of reasoning capability calls in seconds",
		},
	)

	TranscribeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcribe_requests_total",
			Help: "Total number of transcription requests by outcome",
		},
		[]string{"outcome"},
	)
)
