// Package calculator finds the best cross-bookmaker odds combination and
// splits a stake over it.
package calculator

import (
	"fmt"

	"github.com/yourusername/best-odds/internal/models"
)

// SiteCount is the number of bookmakers the optimizer combines.
const SiteCount = 3

// InvSum returns the sum of the reciprocals of the three odds.
func InvSum(t models.OddsTriplet) float64 {
	return 1/t[0] + 1/t[1] + 1/t[2]
}

// rotation returns the outcome each site supplies for cyclic shift j: site 0
// supplies j, site 1 supplies j+1 and site 2 supplies j+2 (mod 3).
func rotation(j int) [SiteCount]models.Outcome {
	return [SiteCount]models.Outcome{
		models.Outcome(j % 3),
		models.Outcome((j + 1) % 3),
		models.Outcome((j + 2) % 3),
	}
}

// combine builds the outcome-ordered triplet and per-outcome source sites for
// match i under rotation j.
func combine(lists [][]models.OddsTriplet, i, j int) (models.OddsTriplet, [3]int) {
	var (
		odds    models.OddsTriplet
		sources [3]int
	)
	for site, outcome := range rotation(j) {
		odds[outcome] = lists[site][i][outcome]
		sources[outcome] = site
	}
	return odds, sources
}

// FindOptimalOdds searches every aligned match and every cyclic assignment of
// outcomes to the three sites for the smallest inverse sum. Only a strictly
// smaller sum replaces the current best, so ties keep the earliest candidate.
func FindOptimalOdds(lists [][]models.OddsTriplet, names []string) (models.OptimalSelection, error) {
	if len(lists) != SiteCount {
		return models.OptimalSelection{}, fmt.Errorf("%w: got %d, need %d", models.ErrSiteCount, len(lists), SiteCount)
	}
	n := len(names)
	if n == 0 {
		return models.OptimalSelection{}, models.ErrEmptyDataset
	}
	for _, list := range lists {
		if len(list) != n {
			return models.OptimalSelection{}, &models.LengthMismatchError{Stage: "optimizer", Names: n, Odds: len(list)}
		}
		for i, t := range list {
			if err := t.Validate(); err != nil {
				return models.OptimalSelection{}, fmt.Errorf("match %d: %w", i, err)
			}
		}
	}

	odds, sources := combine(lists, 0, 0)
	best := models.OptimalSelection{
		MatchIndex: 0,
		MatchName:  names[0],
		Odds:       odds,
		Sources:    sources,
		Rotation:   0,
		InverseSum: InvSum(odds),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			odds, sources := combine(lists, i, j)
			if s := InvSum(odds); s < best.InverseSum {
				best = models.OptimalSelection{
					MatchIndex: i,
					MatchName:  names[i],
					Odds:       odds,
					Sources:    sources,
					Rotation:   j,
					InverseSum: s,
				}
			}
		}
	}
	return best, nil
}

// FindOptimalInCorpus runs FindOptimalOdds over an aligned corpus.
func FindOptimalInCorpus(corpus models.AlignedCorpus) (models.OptimalSelection, error) {
	return FindOptimalOdds(corpus.OddsLists(), corpus.Reference())
}
