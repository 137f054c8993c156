// Package grouping rebuilds match names and odds triplets from the flat text
// fragments extracted from a bookmaker page.
package grouping

import (
	"regexp"
	"strconv"

	"github.com/yourusername/best-odds/internal/models"
	"github.com/yourusername/best-odds/internal/normalize"
)

const matchSeparator = " vs "

var commaDecimal = regexp.MustCompile(`\d+,\d+`)

// Stats counts what grouping discarded. Noise is absorbed, never returned as
// an error.
type Stats struct {
	Containers     int `json:"containers"`
	NoiseTokens    int `json:"noise_tokens"`
	NoiseGroups    int `json:"noise_groups"`
	TrailingValues int `json:"trailing_values"`
	FallbackUsed   int `json:"fallback_used"`
	DroppedNames   int `json:"dropped_names"`
	DroppedOdds    int `json:"dropped_odds"`
	SlicedOut      int `json:"sliced_out"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Containers += other.Containers
	s.NoiseTokens += other.NoiseTokens
	s.NoiseGroups += other.NoiseGroups
	s.TrailingValues += other.TrailingValues
	s.FallbackUsed += other.FallbackUsed
	s.DroppedNames += other.DroppedNames
	s.DroppedOdds += other.DroppedOdds
	s.SlicedOut += other.SlicedOut
}

// Discarded returns the number of values and matches dropped as noise or
// incomplete.
func (s Stats) Discarded() int {
	return s.NoiseTokens + s.NoiseGroups + s.TrailingValues + s.DroppedNames + s.DroppedOdds
}

// PairMatchNames merges team fragments 2k and 2k+1 into "Home vs Away". A
// trailing unpaired fragment is kept as is.
func PairMatchNames(fragments []string) []string {
	names := make([]string, 0, (len(fragments)+1)/2)
	for i := 0; i < len(fragments); i += 2 {
		if i+1 < len(fragments) {
			names = append(names, fragments[i]+matchSeparator+fragments[i+1])
			continue
		}
		names = append(names, fragments[i])
	}
	return names
}

// ParseOddValues converts odd tokens to numbers position by position. A token
// that does not parse or falls outside r leaves a zero in its slot and is
// counted as noise, so the triplet it belongs to can be dropped as a whole.
func ParseOddValues(tokens []string, r models.OddsRange) (values []float64, noise int) {
	values = make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := models.ParseOdd(tok)
		if err != nil || !r.Contains(v) {
			noise++
			continue
		}
		values[i] = v
	}
	return values, noise
}

// GroupOdds packs consecutive values into triplets, at most maxGroups of them
// (negative means unbounded). Values that cannot complete a triplet are
// discarded and counted in trailing.
func GroupOdds(values []float64, maxGroups int) (triplets []models.OddsTriplet, trailing int) {
	n := len(values) / 3
	if maxGroups >= 0 && n > maxGroups {
		n = maxGroups
	}

	triplets = make([]models.OddsTriplet, n)
	for i := range triplets {
		copy(triplets[i][:], values[3*i:3*i+3])
	}
	return triplets, len(values) - 3*n
}

// FallbackOdds scans the raw markup of each odds element for the first
// comma-decimal number and keeps it when it lies strictly inside r. Every
// element keeps its slot; an element without an acceptable value leaves a
// zero there and is counted as noise.
func FallbackOdds(markup []string, r models.OddsRange) (values []float64, noise int) {
	values = make([]float64, len(markup))
	for i, m := range markup {
		raw := commaDecimal.FindString(m)
		if raw == "" {
			noise++
			continue
		}
		v, err := strconv.ParseFloat(normalize.CommaToPeriod(raw), 64)
		if err != nil || !r.ContainsStrict(v) {
			noise++
			continue
		}
		values[i] = v
	}
	return values, noise
}

func hasValue(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}

func isComplete(t models.OddsTriplet) bool {
	return t[0] != 0 && t[1] != 0 && t[2] != 0
}

// Grouper turns raw page containers into a SiteDataset.
type Grouper struct {
	Range models.OddsRange
	// Start and End slice every container after grouping; End 0 means no
	// upper bound.
	Start int
	End   int
}

// NewGrouper returns a grouper with the given odds range and slicing.
func NewGrouper(r models.OddsRange, start, end int) *Grouper {
	return &Grouper{Range: r, Start: start, End: end}
}

// BuildContainer groups one container into equal-length names and triplets.
func (g *Grouper) BuildContainer(raw models.RawContainer) ([]string, []models.OddsTriplet, Stats) {
	stats := Stats{Containers: 1}

	var fragments []string
	for _, text := range raw.MatchTexts {
		fragments = append(fragments, normalize.MatchFragments(text)...)
	}
	names := PairMatchNames(fragments)

	var tokens []string
	for _, text := range raw.OddTexts {
		tokens = append(tokens, normalize.OddTokens(text)...)
	}

	var values []float64
	if len(tokens) == 0 {
		var noise int
		values, noise = FallbackOdds(raw.OddMarkup, g.Range)
		if hasValue(values) {
			stats.FallbackUsed++
			stats.NoiseTokens = noise
		} else {
			values = nil
		}
	} else {
		values, stats.NoiseTokens = ParseOddValues(tokens, g.Range)
	}

	grouped, trailing := GroupOdds(values, len(names))
	stats.TrailingValues = trailing

	n := min(len(names), len(grouped))
	stats.DroppedNames = len(names) - n
	stats.DroppedOdds = len(grouped) - n

	start := min(max(g.Start, 0), n)
	end := n
	if g.End > 0 {
		end = min(g.End, n)
	}
	if end < start {
		end = start
	}
	stats.SlicedOut = n - (end - start)

	// a triplet holding a noise slot is dropped with its match name
	keptNames := make([]string, 0, end-start)
	keptOdds := make([]models.OddsTriplet, 0, end-start)
	for i := start; i < end; i++ {
		if !isComplete(grouped[i]) {
			stats.NoiseGroups++
			continue
		}
		keptNames = append(keptNames, names[i])
		keptOdds = append(keptOdds, grouped[i])
	}
	return keptNames, keptOdds, stats
}

// BuildSite groups every container of a page and concatenates them in page
// order.
func (g *Grouper) BuildSite(raw models.RawSite) (models.SiteDataset, Stats, error) {
	dataset := models.SiteDataset{Site: raw.Site, URL: raw.URL}
	var stats Stats

	for _, container := range raw.Containers {
		names, odds, cs := g.BuildContainer(container)
		dataset.Names = append(dataset.Names, names...)
		dataset.Odds = append(dataset.Odds, odds...)
		stats.Add(cs)
	}

	if err := dataset.Validate("grouping"); err != nil {
		return models.SiteDataset{}, stats, err
	}
	return dataset, stats, nil
}
