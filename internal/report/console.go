// Package report formats scan results for the terminal and for spreadsheets.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/best-odds/internal/calculator"
	"github.com/yourusername/best-odds/internal/models"
)

const stakePlaces = 2

// GenerateConsoleReport formats a scan result for terminal output
func GenerateConsoleReport(result *models.ScanResult) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Scan of %s (run %s)\n", result.League, result.RunID))
	writeAlignedMatches(&builder, result.Corpus)

	sel := result.Selection
	builder.WriteString("\n=== OPTIMAL BETTING STRATEGY ===\n")
	builder.WriteString(fmt.Sprintf("Best match: %s\n", sel.MatchName))
	for _, o := range models.Outcomes {
		builder.WriteString(fmt.Sprintf("%s: %s at %s\n", o, formatOdd(sel.Odds[o]), result.SourceSite(o)))
	}

	builder.WriteString(GeneratePlanReport(result.Plan))
	return builder.String()
}

// GeneratePlanReport formats a stake plan: the distribution, the result of
// each outcome and the total staked.
func GeneratePlanReport(plan models.StakePlan) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Inverse sum: %.4f\n", plan.InverseSum))
	builder.WriteString(fmt.Sprintf("Sure bet opportunity: %s\n", yesNo(plan.IsSureBet)))
	if plan.IsSureBet {
		builder.WriteString(fmt.Sprintf("Margin: %s%%\n", decimal.NewFromFloat(plan.Margin()*100).StringFixed(2)))
	}

	stakes := calculator.RoundStakes(plan, stakePlaces)
	builder.WriteString("\n=== BET DISTRIBUTION ===\n")
	for _, o := range models.Outcomes {
		builder.WriteString(fmt.Sprintf("%s: $%s at odds %s\n", o, stakes[o].StringFixed(stakePlaces), formatOdd(plan.Odds[o])))
	}

	builder.WriteString("\n=== POTENTIAL RESULTS ===\n")
	for _, o := range models.Outcomes {
		profit := decimal.NewFromFloat(plan.Profits[o]).Round(stakePlaces)
		label := "Loss"
		if profit.IsPositive() {
			label = "Profit"
		}
		builder.WriteString(fmt.Sprintf("If %s: %s of $%s\n", strings.ToLower(o.String()), label, profit.Abs().StringFixed(stakePlaces)))
	}

	total := decimal.Sum(stakes[0], stakes[1], stakes[2])
	builder.WriteString(fmt.Sprintf("\nTotal Bet: $%s\n", total.StringFixed(stakePlaces)))
	return builder.String()
}

func writeAlignedMatches(builder *strings.Builder, corpus models.AlignedCorpus) {
	builder.WriteString("\n=== ALIGNED MATCHES ===\n")
	if corpus.Len() == 0 {
		builder.WriteString("(none)\n")
		return
	}

	for i, name := range corpus.Reference() {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
		for _, site := range corpus.Sites {
			line := fmt.Sprintf("   %-12s %s", site.Site, site.Odds[i])
			if i < len(site.SourceNames) && site.SourceNames[i] != name {
				line += fmt.Sprintf("  as %q (%.2f)", site.SourceNames[i], site.Similarity[i])
			}
			builder.WriteString(line + "\n")
		}
	}
}

// GenerateCSVExport writes the aligned corpus, one row per match and site
func GenerateCSVExport(result *models.ScanResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"match_index", "match", "site", "site_match", "similarity", "home", "draw", "away"}); err != nil {
		return err
	}
	for i, name := range result.Corpus.Reference() {
		for _, site := range result.Corpus.Sites {
			odds := site.Odds[i]
			row := []string{
				fmt.Sprint(i),
				name,
				site.Site,
				site.SourceNames[i],
				fmt.Sprintf("%.4f", site.Similarity[i]),
				formatOdd(odds[models.HomeWin]),
				formatOdd(odds[models.Draw]),
				formatOdd(odds[models.AwayWin]),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}

func formatOdd(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
