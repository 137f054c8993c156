package alignment

import (
	"fmt"

	"github.com/yourusername/best-odds/internal/models"
)

// MinTeams returns the length of the smallest dataset.
func MinTeams(datasets []models.SiteDataset) int {
	if len(datasets) == 0 {
		return 0
	}
	n := datasets[0].Len()
	for _, ds := range datasets[1:] {
		n = min(n, ds.Len())
	}
	return n
}

// TruncateToShortest returns copies of every dataset cut to MinTeams.
func TruncateToShortest(datasets []models.SiteDataset) []models.SiteDataset {
	n := MinTeams(datasets)
	out := make([]models.SiteDataset, len(datasets))
	for i, ds := range datasets {
		out[i] = ds.Truncate(n)
	}
	return out
}

// Aligner matches every site's listing against the first (reference) site.
//
// The pass is greedy: for each reference position i, the closest name among
// the site's positions i..n-1 is swapped into i and never revisited. There is
// no similarity threshold, so a match absent from a site is paired with its
// closest, possibly unrelated, neighbour. Callers that need to judge the
// result can inspect AlignedSite.Similarity.
type Aligner struct {
	scorer Scorer
}

// NewAligner creates an aligner using scorer.
func NewAligner(scorer Scorer) *Aligner {
	if scorer == nil {
		scorer = LevenshteinScorer{}
	}
	return &Aligner{scorer: scorer}
}

// Scorer returns the similarity scorer in use.
func (a *Aligner) Scorer() Scorer {
	return a.scorer
}

// Align reorders each non-reference dataset in lockstep (names with their
// odds). All datasets must already have equal length; inputs are not
// modified.
func (a *Aligner) Align(datasets []models.SiteDataset) (models.AlignedCorpus, error) {
	if len(datasets) == 0 {
		return models.AlignedCorpus{}, models.ErrEmptyDataset
	}

	reference := datasets[0]
	for _, ds := range datasets {
		if err := ds.Validate("alignment"); err != nil {
			return models.AlignedCorpus{}, err
		}
		if ds.Len() != reference.Len() {
			return models.AlignedCorpus{}, fmt.Errorf("%w: site %s has %d matches, reference %s has %d",
				models.ErrLengthMismatch, ds.Site, ds.Len(), reference.Site, reference.Len())
		}
	}

	corpus := models.AlignedCorpus{Sites: make([]models.AlignedSite, len(datasets))}
	for i, ds := range datasets {
		if i == 0 {
			corpus.Sites[i] = a.referenceSite(ds)
			continue
		}
		corpus.Sites[i] = a.alignSite(reference.Names, ds)
	}
	return corpus, nil
}

// BuildCorpus truncates every dataset to the shortest one and aligns them.
func (a *Aligner) BuildCorpus(datasets []models.SiteDataset) (models.AlignedCorpus, error) {
	if MinTeams(datasets) == 0 {
		return models.AlignedCorpus{}, models.ErrNoMatches
	}
	return a.Align(TruncateToShortest(datasets))
}

func (a *Aligner) referenceSite(ds models.SiteDataset) models.AlignedSite {
	similarity := make([]float64, ds.Len())
	for i := range similarity {
		similarity[i] = 1
	}
	return models.AlignedSite{
		Site:        ds.Site,
		URL:         ds.URL,
		Names:       append([]string(nil), ds.Names...),
		SourceNames: append([]string(nil), ds.Names...),
		Odds:        append([]models.OddsTriplet(nil), ds.Odds...),
		Similarity:  similarity,
	}
}

func (a *Aligner) alignSite(reference []string, ds models.SiteDataset) models.AlignedSite {
	names := append([]string(nil), ds.Names...)
	odds := append([]models.OddsTriplet(nil), ds.Odds...)
	similarity := make([]float64, len(names))

	for i, ref := range reference {
		best := i
		bestScore := a.scorer.Score(ref, names[i])
		for k := i + 1; k < len(names); k++ {
			// strict comparison keeps the first candidate on ties
			if s := a.scorer.Score(ref, names[k]); s > bestScore {
				best, bestScore = k, s
			}
		}
		names[i], names[best] = names[best], names[i]
		odds[i], odds[best] = odds[best], odds[i]
		similarity[i] = bestScore
	}

	return models.AlignedSite{
		Site:        ds.Site,
		URL:         ds.URL,
		Names:       append([]string(nil), reference...),
		SourceNames: names,
		Odds:        odds,
		Similarity:  similarity,
	}
}
