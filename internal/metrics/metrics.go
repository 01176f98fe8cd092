package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_scans_started_total",
		Help: "Total number of video scans started",
	})

	ScansCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_scans_completed_total",
		Help: "Total number of scans finished, by terminal status",
	}, []string{"status"})

	InferenceRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentinel_inference_request_duration_seconds",
		Help:    "Duration of requests to the external classifier",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	PreviewFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_preview_frames_extracted_total",
		Help: "Total preview frames extracted across all scans",
	})

	ActiveScans = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_active_scans",
		Help: "Number of scans currently in flight",
	})
)
