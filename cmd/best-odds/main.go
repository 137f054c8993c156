// Package main provides the entry point for the best-odds CLI.
package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/best-odds/internal/config"
	"github.com/yourusername/best-odds/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile     string
	envFile        string
	logLevel       string
	leagueOverride string

	cfg    *config.Config
	appLog *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&leagueOverride, "league", "", "Override the selected league")

	rootCmd.AddCommand(scanCmd, watchCmd, calcCmd)
}

var rootCmd = &cobra.Command{
	Use:     "best-odds",
	Short:   "Find the best football odds across bookmakers",
	Long:    `Scrapes 1X2 odds from three bookmakers, aligns their match listings and computes the stake split that minimizes (or eliminates) the loss across outcomes.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if leagueOverride != "" {
		loaded.SelectedLeague = leagueOverride
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}

	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = loaded
	return nil
}

func setupLogger(level, environment string) {
	appLog = logger.NewLogger(level)
	appLog.WithFields(logrus.Fields{
		"environment": environment,
		"log_level":   level,
		"version":     Version,
	}).Debug("Logger initialized")
}
