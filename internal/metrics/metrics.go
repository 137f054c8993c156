// Package metrics provides centralized Prometheus metrics registry for the odds scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "best_odds"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of scans by league",
	}, []string{"league"})
	ScanFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_failures_total",
		Help:      "Total number of failed scans by league and stage",
	}, []string{"league", "stage"})
	SureBetsFoundTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sure_bets_found_total",
		Help:      "Total number of scans whose best selection was a sure bet",
	}, []string{"league"})
	AlertsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of opportunity alerts raised in watch mode",
	})
	ScansSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_skipped_total",
		Help:      "Total number of scheduled scans skipped because one was running",
	})
)

// Gauge metrics
var (
	BestInverseSum = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "best_inverse_sum",
		Help:      "Inverse sum of the best selection found by the last scan",
	}, []string{"league"})
	AlignedMatches = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "aligned_matches",
		Help:      "Number of matches common to all sites in the last scan",
	}, []string{"league"})
	LastSuccessfulScan = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_successful_scan_timestamp_seconds",
		Help:      "Unix time of the last successful scan",
	})
)

// Histogram metrics
var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Duration of complete scans in seconds",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ScansTotal)
		registry.MustRegister(ScanFailuresTotal)
		registry.MustRegister(SureBetsFoundTotal)
		registry.MustRegister(AlertsSentTotal)
		registry.MustRegister(ScansSkippedTotal)

		// Register gauge metrics
		registry.MustRegister(BestInverseSum)
		registry.MustRegister(AlignedMatches)
		registry.MustRegister(LastSuccessfulScan)

		// Register histogram metrics
		registry.MustRegister(ScanDuration)

		// Register site metrics
		registry.MustRegister(SiteFetchDuration)
		registry.MustRegister(SiteFetchErrorsTotal)
		registry.MustRegister(MatchesExtracted)
		registry.MustRegister(ExtractionNoiseTotal)
		registry.MustRegister(AlignmentSimilarity)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordScan records a completed scan and its best selection.
func RecordScan(league string, durationSeconds, inverseSum float64, matches int, completedAt float64) {
	ScansTotal.WithLabelValues(league).Inc()
	ScanDuration.Observe(durationSeconds)
	BestInverseSum.WithLabelValues(league).Set(inverseSum)
	AlignedMatches.WithLabelValues(league).Set(float64(matches))
	LastSuccessfulScan.Set(completedAt)
	if inverseSum < 1 {
		SureBetsFoundTotal.WithLabelValues(league).Inc()
	}
}

// RecordScanFailure records a scan that failed at stage.
func RecordScanFailure(league, stage string) {
	ScansTotal.WithLabelValues(league).Inc()
	ScanFailuresTotal.WithLabelValues(league, stage).Inc()
}

// RecordAlert records an opportunity alert.
func RecordAlert() {
	AlertsSentTotal.Inc()
}

// RecordScanSkipped records a skipped scheduled scan.
func RecordScanSkipped() {
	ScansSkippedTotal.Inc()
}
