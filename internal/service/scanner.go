package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/yourusername/best-odds/internal/alignment"
	"github.com/yourusername/best-odds/internal/calculator"
	"github.com/yourusername/best-odds/internal/config"
	"github.com/yourusername/best-odds/internal/datasource"
	"github.com/yourusername/best-odds/internal/grouping"
	"github.com/yourusername/best-odds/internal/logger"
	"github.com/yourusername/best-odds/internal/metrics"
	"github.com/yourusername/best-odds/internal/models"
)

// Scan stages, used in logs and failure metrics
const (
	StageFetch      = "fetch"
	StageGrouping   = "grouping"
	StageAlignment  = "alignment"
	StageOptimizer  = "optimizer"
	StageStakePlan  = "distribution"
	StageValidation = "validation"
)

// ScanRunner runs a complete scan of a league.
type ScanRunner interface {
	Scan(ctx context.Context, league string, stake float64) (*models.ScanResult, error)
}

// Scanner fetches every site of a league and turns the pages into an
// aligned corpus, the optimal selection and a stake plan.
type Scanner struct {
	source        datasource.PageSource
	aligner       *alignment.Aligner
	oddsRange     models.OddsRange
	maxConcurrent int
	logger        *logger.ScanLogger
	leagues       func(name string) (config.LeagueConfig, error)
}

// NewScanner creates a scanner from configuration.
func NewScanner(cfg *config.Config, source datasource.PageSource, log *logrus.Logger) (*Scanner, error) {
	scorer, err := alignment.NewScorer(cfg.Alignment.Scorer)
	if err != nil {
		return nil, err
	}

	maxConcurrent := cfg.Scraper.MaxConcurrentSites
	if maxConcurrent <= 0 {
		maxConcurrent = calculator.SiteCount
	}

	return &Scanner{
		source:        source,
		aligner:       alignment.NewAligner(scorer),
		oddsRange:     models.OddsRange{Min: cfg.Odds.Min, Max: cfg.Odds.Max},
		maxConcurrent: maxConcurrent,
		logger:        logger.NewScanLogger(log),
		leagues:       cfg.League,
	}, nil
}

// Scan runs one scan of the named league distributing stake.
func (s *Scanner) Scan(ctx context.Context, leagueName string, stake float64) (*models.ScanResult, error) {
	started := time.Now()
	runID := uuid.New()
	log := s.logger.WithRun(runID, leagueName)

	league, err := s.leagues(leagueName)
	if err != nil {
		return nil, s.fail(log, leagueName, StageValidation, err)
	}
	if len(league.Sites) != calculator.SiteCount {
		err := fmt.Errorf("%w: league %s lists %d", models.ErrSiteCount, leagueName, len(league.Sites))
		return nil, s.fail(log, leagueName, StageValidation, err)
	}
	if stake <= 0 {
		return nil, s.fail(log, leagueName, StageValidation, fmt.Errorf("%w: %v", models.ErrInvalidStake, stake))
	}

	names := make([]string, len(league.Sites))
	for i, site := range league.Sites {
		names[i] = site.Name
	}
	log.LogScanStarted(names, s.source.Name(), stake)

	raws, durations, err := s.fetchAll(ctx, league.Sites)
	if err != nil {
		return nil, s.fail(log, leagueName, StageFetch, err)
	}

	result, stage, err := s.Process(log, league, raws, durations, stake)
	if err != nil {
		return nil, s.fail(log, leagueName, stage, err)
	}

	result.RunID = runID
	result.League = leagueName
	result.StartedAt = started
	result.Duration = time.Since(started)

	metrics.RecordScan(leagueName, result.Duration.Seconds(), result.Selection.InverseSum,
		result.Corpus.Len(), float64(time.Now().Unix()))
	log.LogScanCompleted(result.Corpus.Len(), result.Selection.InverseSum, result.Duration)

	return result, nil
}

// fetchAll retrieves every site concurrently. Results keep the configured
// site order; the first failure cancels the remaining fetches.
func (s *Scanner) fetchAll(ctx context.Context, sites []config.SiteConfig) ([]models.RawSite, []time.Duration, error) {
	raws := make([]models.RawSite, len(sites))
	durations := make([]time.Duration, len(sites))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.maxConcurrent)

	for i, site := range sites {
		p.Go(func(ctx context.Context) error {
			start := time.Now()
			raw, err := s.source.Fetch(ctx, site)
			if err != nil {
				return fmt.Errorf("site %s: %w", site.Name, err)
			}
			raws[i] = raw
			durations[i] = time.Since(start)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return raws, durations, nil
}

// Process runs grouping, alignment, optimization and distribution over
// fetched pages. On failure it returns the stage that failed.
func (s *Scanner) Process(log *logger.ScanLogger, league config.LeagueConfig, raws []models.RawSite, durations []time.Duration, stake float64) (*models.ScanResult, string, error) {
	grouper := grouping.NewGrouper(s.oddsRange, league.StartIndex, league.EndIndex)

	datasets := make([]models.SiteDataset, len(raws))
	for i, raw := range raws {
		dataset, stats, err := grouper.BuildSite(raw)
		if err != nil {
			return nil, StageGrouping, err
		}
		datasets[i] = dataset

		var fetched time.Duration
		if i < len(durations) {
			fetched = durations[i]
		}
		log.LogSiteExtracted(raw.Site, stats.Containers, dataset.Len(), fetched)
		if stats.Discarded() > 0 || stats.FallbackUsed > 0 {
			log.LogExtractionNoise(raw.Site, stats.NoiseTokens, stats.NoiseGroups, stats.TrailingValues, stats.DroppedNames, stats.DroppedOdds, stats.FallbackUsed)
		}
		metrics.RecordExtraction(raw.Site, dataset.Len(), stats.NoiseTokens, stats.NoiseGroups, stats.TrailingValues, stats.DroppedNames+stats.DroppedOdds)
	}

	corpus, err := s.aligner.BuildCorpus(datasets)
	if err != nil {
		return nil, StageAlignment, err
	}
	for _, site := range corpus.Sites[1:] {
		minSimilarity := 1.0
		for _, v := range site.Similarity {
			minSimilarity = min(minSimilarity, v)
		}
		log.LogAlignment(site.Site, s.aligner.Scorer().Name(), len(site.Names), site.MeanSimilarity(), minSimilarity)
		metrics.RecordAlignment(site.Site, site.MeanSimilarity())
	}

	selection, err := calculator.FindOptimalInCorpus(corpus)
	if err != nil {
		return nil, StageOptimizer, err
	}

	plan, err := calculator.CalculateBetDistribution(selection.Odds, stake)
	if err != nil {
		return nil, StageStakePlan, err
	}

	result := &models.ScanResult{
		Corpus:    corpus,
		Selection: selection,
		Plan:      plan,
	}

	log.LogSelection(selection.MatchName, selection.Odds, sourceNames(result), selection.InverseSum)
	log.LogStakePlan(plan.TotalStake, plan.BaseUnit, plan.Stakes, plan.Profits)

	return result, "", nil
}

func (s *Scanner) fail(log *logger.ScanLogger, league, stage string, err error) error {
	log.LogScanFailed(stage, err)
	metrics.RecordScanFailure(league, stage)
	return fmt.Errorf("%s: %w", stage, err)
}

func sourceNames(result *models.ScanResult) [3]string {
	return [3]string{
		result.SourceSite(models.HomeWin),
		result.SourceSite(models.Draw),
		result.SourceSite(models.AwayWin),
	}
}
