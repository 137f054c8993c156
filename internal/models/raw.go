package models

import "time"

// RawContainer is what the page retrieval layer extracts from one match
// container: the visible text of every match element and odds element, plus
// the inner markup of each odds element for the fallback path.
type RawContainer struct {
	MatchTexts []string `json:"match_texts"`
	OddTexts   []string `json:"odd_texts"`
	OddMarkup  []string `json:"odd_markup"`
}

// RawSite holds every container extracted from one bookmaker page, in page
// order.
type RawSite struct {
	Site       string         `json:"site"`
	URL        string         `json:"url"`
	Containers []RawContainer `json:"containers"`
	FetchedAt  time.Time      `json:"fetched_at"`
}
