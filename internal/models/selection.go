package models

import (
	"time"

	"github.com/google/uuid"
)

// OptimalSelection is the best outcome-to-site assignment found across all
// aligned matches. Odds is stored in outcome order; Sources[k] is the index of
// the site supplying outcome k.
type OptimalSelection struct {
	MatchIndex int         `json:"match_index"`
	MatchName  string      `json:"match_name"`
	Odds       OddsTriplet `json:"odds"`
	Sources    [3]int      `json:"sources"`
	Rotation   int         `json:"rotation"`
	InverseSum float64     `json:"inverse_sum"`
}

// IsSureBet reports whether the selection is a risk-free arbitrage.
func (s OptimalSelection) IsSureBet() bool {
	return s.InverseSum < 1
}

// StakePlan distributes a total stake over the three outcomes.
type StakePlan struct {
	TotalStake float64     `json:"total_stake"`
	Odds       OddsTriplet `json:"odds"`
	InverseSum float64     `json:"inverse_sum"`
	BaseUnit   float64     `json:"base_unit"`
	Stakes     [3]float64  `json:"stakes"`
	Profits    [3]float64  `json:"profits"`
	IsSureBet  bool        `json:"is_sure_bet"`
}

// Margin is the share of the stake won (positive) or lost whatever the
// outcome.
func (p StakePlan) Margin() float64 {
	return 1 - p.InverseSum
}

// TotalStaked sums the three stakes.
func (p StakePlan) TotalStaked() float64 {
	return p.Stakes[0] + p.Stakes[1] + p.Stakes[2]
}

// ScanResult is the output of one scan run over a league.
type ScanResult struct {
	RunID     uuid.UUID        `json:"run_id"`
	League    string           `json:"league"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Corpus    AlignedCorpus    `json:"corpus"`
	Selection OptimalSelection `json:"selection"`
	Plan      StakePlan        `json:"plan"`
}

// SourceSite returns the name of the site supplying outcome o.
func (r *ScanResult) SourceSite(o Outcome) string {
	idx := r.Selection.Sources[o]
	if idx < 0 || idx >= len(r.Corpus.Sites) {
		return ""
	}
	return r.Corpus.Sites[idx].Site
}
