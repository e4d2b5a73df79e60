// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion directions.
const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrase_audio_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "phrase_audio_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ConversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "phrase_audio_conversion_duration_seconds",
		Help:    "Time spent in the external audio converter",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"direction"})

	ConversionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrase_audio_conversion_failures_total",
		Help: "Total number of failed audio conversions",
	}, []string{"direction"})

	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phrase_audio_upload_bytes",
		Help:    "Size of uploaded audio files",
		Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8),
	})
)

func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordConversion(direction string, elapsed time.Duration, err error) {
	ConversionDuration.WithLabelValues(direction).Observe(elapsed.Seconds())
	if err != nil {
		ConversionFailures.WithLabelValues(direction).Inc()
	}
}
