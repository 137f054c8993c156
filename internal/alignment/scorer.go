// Package alignment reorders per-site match listings so that the same index
// refers to the same real-world match on every site.
package alignment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer names accepted in configuration.
const (
	ScorerLevenshtein = "levenshtein"
	ScorerSequence    = "sequence"
)

// Scorer rates how alike two match names are. Higher is closer; 1 means
// identical.
type Scorer interface {
	Name() string
	Score(reference, candidate string) float64
}

// NewScorer returns the scorer registered under name. An empty name selects
// the edit-distance scorer.
func NewScorer(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", ScorerLevenshtein:
		return LevenshteinScorer{}, nil
	case ScorerSequence:
		return SequenceScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown alignment scorer: %s", name)
	}
}

// LevenshteinScorer scores names by edit distance normalized to the longer
// name's length, case-insensitively.
type LevenshteinScorer struct{}

func (LevenshteinScorer) Name() string { return ScorerLevenshtein }

func (LevenshteinScorer) Score(reference, candidate string) float64 {
	a, b := strings.ToLower(reference), strings.ToLower(candidate)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// SequenceScorer scores names with the Ratcliff/Obershelp matching-blocks
// ratio over characters, case-insensitively.
type SequenceScorer struct{}

func (SequenceScorer) Name() string { return ScorerSequence }

func (SequenceScorer) Score(reference, candidate string) float64 {
	a := strings.Split(strings.ToLower(candidate), "")
	b := strings.Split(strings.ToLower(reference), "")
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}
