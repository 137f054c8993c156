package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/best-odds/internal/logger"
	"github.com/yourusername/best-odds/internal/metrics"
	"github.com/yourusername/best-odds/internal/models"
)

// ErrScanInProgress is returned when a scan is requested while one runs.
var ErrScanInProgress = errors.New("scan already in progress")

// ErrNoScanYet is reported by readiness until a scan has succeeded.
var ErrNoScanYet = errors.New("no successful scan yet")

// AlertFunc receives opportunities that passed the margin and cooldown
// filters.
type AlertFunc func(result *models.ScanResult)

// WatcherConfig configures scheduled scanning.
type WatcherConfig struct {
	League        string
	Stake         float64
	MinMargin     float64
	AlertCooldown time.Duration
	ScanTimeout   time.Duration
}

// Watcher runs scans repeatedly, keeps the latest result and raises alerts
// for sure bets. Scans never overlap.
type Watcher struct {
	runner     ScanRunner
	cfg        WatcherConfig
	cache      *OpportunityCache
	logger     *logger.WatchLogger
	scanLogger *logger.ScanLogger
	onAlert    AlertFunc

	running atomic.Bool

	mu      sync.RWMutex
	latest  *models.ScanResult
	lastErr error
	lastRun time.Time
	scans   int
	alerts  int
}

// NewWatcher creates a watcher around runner.
func NewWatcher(runner ScanRunner, cfg WatcherConfig, log *logrus.Logger) *Watcher {
	return &Watcher{
		runner:     runner,
		cfg:        cfg,
		cache:      NewOpportunityCache(cfg.AlertCooldown),
		logger:     logger.NewWatchLogger(log),
		scanLogger: logger.NewScanLogger(log),
	}
}

// OnAlert registers a callback for alerted opportunities.
func (w *Watcher) OnAlert(fn AlertFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onAlert = fn
}

// RunOnce performs one scan unless another is still running.
func (w *Watcher) RunOnce(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		w.logger.LogScanSkipped("previous scan still running")
		metrics.RecordScanSkipped()
		return ErrScanInProgress
	}
	defer w.running.Store(false)

	if w.cfg.ScanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.ScanTimeout)
		defer cancel()
	}

	result, err := w.runner.Scan(ctx, w.cfg.League, w.cfg.Stake)

	w.mu.Lock()
	w.scans++
	w.lastRun = time.Now()
	w.lastErr = err
	if err == nil {
		w.latest = result
	}
	onAlert := w.onAlert
	w.mu.Unlock()

	if err != nil {
		return err
	}

	if w.isOpportunity(result) {
		w.alert(result, onAlert)
	}
	return nil
}

// isOpportunity reports whether the result beats the configured margin:
// inverse sum below 1 - MinMargin.
func (w *Watcher) isOpportunity(result *models.ScanResult) bool {
	return result.Plan.IsSureBet && result.Selection.InverseSum < 1-w.cfg.MinMargin
}

func (w *Watcher) alert(result *models.ScanResult, onAlert AlertFunc) {
	key := KeyFor(result)
	ok, remaining := w.cache.ShouldAlert(key)
	if !ok {
		w.logger.LogAlertSuppressed(key.String(), remaining.Seconds())
		return
	}

	w.scanLogger.WithRun(result.RunID, result.League).LogOpportunityAlert(
		result.Selection.MatchName, result.Plan.Margin(), result.Plan.Profits[0], sourceNames(result))
	metrics.RecordAlert()

	w.mu.Lock()
	w.alerts++
	w.mu.Unlock()

	if onAlert != nil {
		onAlert(result)
	}
}

// Latest returns the most recent successful scan.
func (w *Watcher) Latest() (*models.ScanResult, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest, w.latest != nil
}

// Ready reports whether the last scan succeeded.
func (w *Watcher) Ready() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.lastErr != nil {
		return w.lastErr
	}
	if w.latest == nil {
		return ErrNoScanYet
	}
	return nil
}

// LastRun returns when the last scan finished.
func (w *Watcher) LastRun() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastRun
}

// Counts returns the number of scans run and alerts raised.
func (w *Watcher) Counts() (scans, alerts int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scans, w.alerts
}

// Job adapts RunOnce to a scheduler job; errors are already logged by the
// scanner.
func (w *Watcher) Job(ctx context.Context) {
	_ = w.RunOnce(ctx)
}
