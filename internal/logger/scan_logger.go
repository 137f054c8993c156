// Package logger provides scan-specific logging.
package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ScanLogger provides dedicated logging for scan runs.
type ScanLogger struct {
	*logrus.Entry
}

// NewScanLogger creates a new scan logger.
func NewScanLogger(baseLogger *logrus.Logger) *ScanLogger {
	return &ScanLogger{
		Entry: baseLogger.WithField("component", "scan"),
	}
}

// WithRun returns a logger tagging every line with the scan's run ID.
func (sl *ScanLogger) WithRun(runID uuid.UUID, league string) *ScanLogger {
	return &ScanLogger{
		Entry: sl.WithFields(logrus.Fields{
			"run_id": runID.String(),
			"league": league,
		}),
	}
}

// LogScanStarted logs the start of a scan.
func (sl *ScanLogger) LogScanStarted(sites []string, mode string, totalStake float64) {
	sl.WithFields(logrus.Fields{
		"sites":       sites,
		"fetch_mode":  mode,
		"total_stake": totalStake,
	}).Info("Scan started")
}

// LogSiteExtracted logs the matches grouped from one site.
func (sl *ScanLogger) LogSiteExtracted(site string, containers, matches int, fetchDuration time.Duration) {
	sl.WithFields(logrus.Fields{
		"site":              site,
		"containers":        containers,
		"matches":           matches,
		"fetch_duration_ms": fetchDuration.Milliseconds(),
	}).Info("Site extracted")
}

// LogExtractionNoise logs values discarded while grouping a site.
func (sl *ScanLogger) LogExtractionNoise(site string, noiseTokens, noiseGroups, trailingValues, droppedNames, droppedOdds, fallbackUsed int) {
	sl.WithFields(logrus.Fields{
		"site":            site,
		"noise_tokens":    noiseTokens,
		"noise_groups":    noiseGroups,
		"trailing_values": trailingValues,
		"dropped_names":   droppedNames,
		"dropped_odds":    droppedOdds,
		"fallback_used":   fallbackUsed,
	}).Debug("Extraction noise discarded")
}

// LogAlignment logs the result of aligning one site against the reference.
func (sl *ScanLogger) LogAlignment(site, scorer string, matches int, meanSimilarity, minSimilarity float64) {
	fields := logrus.Fields{
		"site":            site,
		"scorer":          scorer,
		"matches":         matches,
		"mean_similarity": meanSimilarity,
		"min_similarity":  minSimilarity,
	}
	if minSimilarity < 0.5 {
		sl.WithFields(fields).Warn("Site aligned with weak name matches")
		return
	}
	sl.WithFields(fields).Info("Site aligned")
}

// LogSelection logs the optimal selection.
func (sl *ScanLogger) LogSelection(match string, odds [3]float64, sources [3]string, inverseSum float64) {
	sl.WithFields(logrus.Fields{
		"match":       match,
		"home_odd":    odds[0],
		"draw_odd":    odds[1],
		"away_odd":    odds[2],
		"home_site":   sources[0],
		"draw_site":   sources[1],
		"away_site":   sources[2],
		"inverse_sum": inverseSum,
		"sure_bet":    inverseSum < 1,
	}).Info("Optimal odds selected")
}

// LogStakePlan logs the stake distribution.
func (sl *ScanLogger) LogStakePlan(totalStake, baseUnit float64, stakes, profits [3]float64) {
	sl.WithFields(logrus.Fields{
		"total_stake": totalStake,
		"base_unit":   baseUnit,
		"stakes":      stakes,
		"profits":     profits,
	}).Info("Stake plan computed")
}

// LogScanCompleted logs the end of a successful scan.
func (sl *ScanLogger) LogScanCompleted(matches int, inverseSum float64, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"matches":     matches,
		"inverse_sum": inverseSum,
		"duration_ms": duration.Milliseconds(),
	}).Info("Scan completed")
}

// LogScanFailed logs a failed scan.
func (sl *ScanLogger) LogScanFailed(stage string, err error) {
	sl.WithFields(logrus.Fields{
		"stage": stage,
		"error": err.Error(),
	}).Error("Scan failed")
}

// LogOpportunityAlert logs a sure bet worth acting on.
func (sl *ScanLogger) LogOpportunityAlert(match string, margin, guaranteedProfit float64, sources [3]string) {
	sl.WithFields(logrus.Fields{
		"match":             match,
		"margin":            margin,
		"guaranteed_profit": guaranteedProfit,
		"home_site":         sources[0],
		"draw_site":         sources[1],
		"away_site":         sources[2],
	}).Warn("Sure bet opportunity found")
}
