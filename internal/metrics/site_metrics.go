package metrics

import "github.com/prometheus/client_golang/prometheus"

// Site-level vectors
var (
	SiteFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "site_fetch_duration_seconds",
		Help:      "Duration of page retrieval per site in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"site", "mode"})

	SiteFetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "site_fetch_errors_total",
		Help:      "Total number of page retrieval failures by site and error code",
	}, []string{"site", "code"})

	MatchesExtracted = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "matches_extracted",
		Help:      "Number of matches grouped from the last retrieval of each site",
	}, []string{"site"})

	ExtractionNoiseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extraction_noise_total",
		Help:      "Total number of values discarded while grouping, by kind",
	}, []string{"site", "kind"})

	AlignmentSimilarity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alignment_mean_similarity",
		Help:      "Mean name similarity of each site against the reference in the last scan",
	}, []string{"site"})
)

// RecordSiteFetch records a page retrieval.
func RecordSiteFetch(site, mode string, durationSeconds float64) {
	SiteFetchDuration.WithLabelValues(site, mode).Observe(durationSeconds)
}

// RecordSiteFetchError records a failed page retrieval.
func RecordSiteFetchError(site, code string) {
	SiteFetchErrorsTotal.WithLabelValues(site, code).Inc()
}

// RecordExtraction records the grouping outcome of one site.
func RecordExtraction(site string, matches, noiseTokens, noiseGroups, trailingValues, dropped int) {
	MatchesExtracted.WithLabelValues(site).Set(float64(matches))
	ExtractionNoiseTotal.WithLabelValues(site, "noise_token").Add(float64(noiseTokens))
	ExtractionNoiseTotal.WithLabelValues(site, "noise_group").Add(float64(noiseGroups))
	ExtractionNoiseTotal.WithLabelValues(site, "incomplete_group").Add(float64(trailingValues))
	ExtractionNoiseTotal.WithLabelValues(site, "length_cut").Add(float64(dropped))
}

// RecordAlignment records the alignment quality of one site.
func RecordAlignment(site string, meanSimilarity float64) {
	AlignmentSimilarity.WithLabelValues(site).Set(meanSimilarity)
}
