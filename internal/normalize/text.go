// Package normalize cleans raw page text before it is grouped into match
// names and odds.
package normalize

import "strings"

// SplitByNewline splits text into lines. Empty lines are kept; use
// RemoveEmpty to drop them.
func SplitByNewline(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// SplitListByNewline flattens values so that every entry holding line breaks
// becomes one entry per line, preserving order.
func SplitListByNewline(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, SplitByNewline(v)...)
	}
	return out
}

// RemoveEmpty drops empty and whitespace-only strings and trims the rest.
func RemoveEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// RemoveVs deletes a "vs" separator that sits on its own line so the two
// team names end up on consecutive lines.
func RemoveVs(text string) string {
	return strings.ReplaceAll(text, "\nvs", "")
}

// CommaToPeriod converts a comma decimal separator to a period.
func CommaToPeriod(value string) string {
	return strings.ReplaceAll(value, ",", ".")
}

// MatchFragments turns the visible text of one match element into its team
// name fragments.
func MatchFragments(text string) []string {
	return RemoveEmpty(SplitByNewline(RemoveVs(text)))
}

// OddTokens turns the visible text of one odds element into candidate odd
// tokens with period decimal separators.
func OddTokens(text string) []string {
	tokens := RemoveEmpty(SplitByNewline(text))
	for i, tok := range tokens {
		tokens[i] = CommaToPeriod(tok)
	}
	return tokens
}
