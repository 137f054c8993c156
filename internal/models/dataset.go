package models

// SiteDataset is one bookmaker's ordered match list with the odds triplet
// of each match at the same index.
type SiteDataset struct {
	Site  string        `json:"site"`
	URL   string        `json:"url"`
	Names []string      `json:"names"`
	Odds  []OddsTriplet `json:"odds"`
}

// Len returns the number of matches in the dataset.
func (d SiteDataset) Len() int {
	return len(d.Names)
}

// Validate checks the names/odds pairing invariant.
func (d SiteDataset) Validate(stage string) error {
	if len(d.Names) != len(d.Odds) {
		return &LengthMismatchError{Stage: stage, Site: d.Site, Names: len(d.Names), Odds: len(d.Odds)}
	}
	return nil
}

// Truncate returns a copy holding at most the first n matches.
func (d SiteDataset) Truncate(n int) SiteDataset {
	out := SiteDataset{Site: d.Site, URL: d.URL}
	out.Names = append([]string(nil), d.Names[:min(n, len(d.Names))]...)
	out.Odds = append([]OddsTriplet(nil), d.Odds[:min(n, len(d.Odds))]...)
	return out
}

// AlignedSite is a site's data after cross-site alignment. Names repeats the
// reference site's names; SourceNames holds the site's own names in aligned
// order so poor matches can be inspected.
type AlignedSite struct {
	Site        string        `json:"site"`
	URL         string        `json:"url"`
	Names       []string      `json:"names"`
	SourceNames []string      `json:"source_names"`
	Odds        []OddsTriplet `json:"odds"`
	Similarity  []float64     `json:"similarity"`
}

// MeanSimilarity averages the name similarity of every aligned position.
func (s AlignedSite) MeanSimilarity() float64 {
	if len(s.Similarity) == 0 {
		return 0
	}
	var total float64
	for _, v := range s.Similarity {
		total += v
	}
	return total / float64(len(s.Similarity))
}

// AlignedCorpus holds every site after alignment; index i refers to the
// reference site's match i in all of them.
type AlignedCorpus struct {
	Sites []AlignedSite `json:"sites"`
}

// Len returns the number of aligned matches.
func (c AlignedCorpus) Len() int {
	if len(c.Sites) == 0 {
		return 0
	}
	return len(c.Sites[0].Names)
}

// Reference returns the reference site's match names.
func (c AlignedCorpus) Reference() []string {
	if len(c.Sites) == 0 {
		return nil
	}
	return c.Sites[0].Names
}

// OddsLists returns the aligned odds sequence of every site.
func (c AlignedCorpus) OddsLists() [][]OddsTriplet {
	lists := make([][]OddsTriplet, len(c.Sites))
	for i, site := range c.Sites {
		lists[i] = site.Odds
	}
	return lists
}
