package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/best-odds/internal/datasource"
	"github.com/yourusername/best-odds/internal/health"
	"github.com/yourusername/best-odds/internal/logger"
	"github.com/yourusername/best-odds/internal/metrics"
	"github.com/yourusername/best-odds/internal/models"
	"github.com/yourusername/best-odds/internal/notify"
	"github.com/yourusername/best-odds/internal/report"
	"github.com/yourusername/best-odds/internal/scheduler"
	"github.com/yourusername/best-odds/internal/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan the selected league on a schedule and alert on sure bets",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	league, err := cfg.ActiveLeague()
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	source, err := datasource.NewPageSource(cfg.Scraper, appLog)
	if err != nil {
		return fmt.Errorf("failed to create page source: %w", err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			appLog.WithError(err).Warn("Failed to close page source")
		}
	}()

	scanner, err := service.NewScanner(cfg, source, appLog)
	if err != nil {
		return err
	}

	watcher := service.NewWatcher(scanner, service.WatcherConfig{
		League:        cfg.SelectedLeague,
		Stake:         cfg.Betting.TotalAmount,
		MinMargin:     cfg.Watch.MinMargin,
		AlertCooldown: cfg.Watch.AlertCooldown(),
		ScanTimeout:   time.Duration(len(league.Sites)) * cfg.Scraper.PageTimeout(),
	}, appLog)

	var notifier notify.Notifier
	if tg := cfg.Notify.Telegram; tg.Enabled {
		tn, err := notify.NewTelegramNotifier(tg.BotToken, tg.ChatID, appLog)
		if err != nil {
			return err
		}
		notifier = tn
		defer notifier.Close()
	}

	watcher.OnAlert(func(result *models.ScanResult) {
		fmt.Fprint(cmd.OutOrStdout(), report.GenerateConsoleReport(result))
		if notifier != nil {
			if err := notifier.Notify(ctx, result); err != nil {
				appLog.WithError(err).Warn("Failed to deliver alert")
			}
		}
	})

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	server := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Addr:        cfg.GetMetricsAddr(),
		MetricsPath: metricsPath,
		CORSOrigins: cfg.Watch.CORSOrigins,
		Logger:      appLog,
		Readiness:   watcher,
		Opportunity: watcher,
	})
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	sched := scheduler.NewScheduler(appLog)
	if _, err := sched.ScheduleJob("scan", cfg.Watch.Schedule, 0, watcher.Job); err != nil {
		return err
	}

	watchLog := logger.NewWatchLogger(appLog)
	watchLog.LogWatchStarted(cfg.SelectedLeague, cfg.Watch.Schedule, cfg.GetMetricsAddr())

	if err := watcher.RunOnce(ctx); err != nil && !errors.Is(err, service.ErrScanInProgress) {
		appLog.WithError(err).Warn("Initial scan failed")
	}
	server.SetReady(true)

	if err := sched.Start(); err != nil {
		return err
	}
	appLog.WithField("next_run", sched.GetNextRun()).Info("Waiting for next scan")

	<-ctx.Done()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Warn("Scheduler did not stop cleanly")
	}
	scans, alerts := watcher.Counts()
	watchLog.LogWatchStopped("signal", scans, alerts)
	return nil
}
