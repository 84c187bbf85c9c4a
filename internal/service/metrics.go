package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_upstream_requests_total",
			Help: "Calls to the language model API by outcome.",
		},
		[]string{"outcome"},
	)

	fallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipes_fallback_total",
			Help: "Responses that used the fallback recipe.",
		},
	)

	transcriptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_transcriptions_total",
			Help: "Transcriptions by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
)

// RecordTranscription counts one transcription for the given endpoint.
func RecordTranscription(endpoint string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	transcriptions.WithLabelValues(endpoint, outcome).Inc()
}

func upstreamOutcome(err error) string {
	var upstreamErr *UpstreamError
	var netErr *NetworkError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrServiceUnavailable):
		return "unconfigured"
	case errors.As(err, &upstreamErr):
		return "upstream_error"
	case errors.As(err, &netErr):
		return "network_error"
	case errors.Is(err, ErrUpstreamFormat):
		return "format_error"
	default:
		return "error"
	}
}
