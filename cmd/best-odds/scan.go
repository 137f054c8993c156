package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/best-odds/internal/datasource"
	"github.com/yourusername/best-odds/internal/report"
	"github.com/yourusername/best-odds/internal/service"
)

var (
	scanStake float64
	scanCSV   string
)

func init() {
	scanCmd.Flags().Float64Var(&scanStake, "stake", 0, "Total amount to stake (defaults to betting.total_amount)")
	scanCmd.Flags().StringVar(&scanCSV, "csv", "", "Also write the aligned matches to this CSV file")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scrape the selected league once and print the best stake split",
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stake := cfg.Betting.TotalAmount
	if cmd.Flags().Changed("stake") {
		stake = scanStake
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

	result, err := scanner.Scan(ctx, cfg.SelectedLeague, stake)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.GenerateConsoleReport(result))

	if scanCSV != "" {
		if err := report.GenerateCSVExport(result, scanCSV); err != nil {
			return fmt.Errorf("failed to write %s: %w", scanCSV, err)
		}
		appLog.WithField("path", scanCSV).Info("Aligned matches exported")
	}
	return nil
}
