// Package logger provides watch mode logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// WatchLogger provides dedicated logging for scheduled scanning.
type WatchLogger struct {
	*logrus.Entry
}

// NewWatchLogger creates a new watch logger.
func NewWatchLogger(baseLogger *logrus.Logger) *WatchLogger {
	return &WatchLogger{
		Entry: baseLogger.WithField("component", "watch"),
	}
}

// LogWatchStarted logs the start of scheduled scanning.
func (wl *WatchLogger) LogWatchStarted(league, schedule, addr string) {
	wl.WithFields(logrus.Fields{
		"league":   league,
		"schedule": schedule,
		"addr":     addr,
	}).Info("Watch started")
}

// LogScanSkipped logs a tick skipped because the previous scan still runs.
func (wl *WatchLogger) LogScanSkipped(reason string) {
	wl.WithField("reason", reason).Warn("Scheduled scan skipped")
}

// LogAlertSuppressed logs an opportunity not alerted again within the cooldown.
func (wl *WatchLogger) LogAlertSuppressed(key string, remainingSeconds float64) {
	wl.WithFields(logrus.Fields{
		"alert_key":         key,
		"remaining_seconds": remainingSeconds,
	}).Debug("Opportunity alert suppressed")
}

// LogWatchStopped logs shutdown of scheduled scanning.
func (wl *WatchLogger) LogWatchStopped(reason string, scans, alerts int) {
	wl.WithFields(logrus.Fields{
		"reason": reason,
		"scans":  scans,
		"alerts": alerts,
	}).Info("Watch stopped")
}
