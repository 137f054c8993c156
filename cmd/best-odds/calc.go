package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/best-odds/internal/calculator"
	"github.com/yourusername/best-odds/internal/models"
	"github.com/yourusername/best-odds/internal/normalize"
	"github.com/yourusername/best-odds/internal/report"
)

var calcStake float64

func init() {
	calcCmd.Flags().Float64Var(&calcStake, "stake", 100, "Total amount to stake")
}

// calcCmd works offline and needs no configuration file.
var calcCmd = &cobra.Command{
	Use:     "calc HOME DRAW AWAY",
	Short:   "Split a stake over three given odds",
	Example: "  best-odds calc 2,40 3.10 4.2 --stake 600",
	Args:    cobra.ExactArgs(3),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = "warn"
		}
		setupLogger(level, "")
		return nil
	},
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	odds, err := models.ParseOddsTriplet(
		normalize.CommaToPeriod(args[0]),
		normalize.CommaToPeriod(args[1]),
		normalize.CommaToPeriod(args[2]),
	)
	if err != nil {
		return fmt.Errorf("invalid odds: %w", err)
	}

	plan, err := calculator.CalculateBetDistribution(odds, calcStake)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.GeneratePlanReport(plan))
	return nil
}
