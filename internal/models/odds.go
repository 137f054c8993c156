package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome is one of the three possible results of a football match.
type Outcome int

const (
	HomeWin Outcome = iota
	Draw
	AwayWin
)

// Outcomes lists the outcomes in triplet order.
var Outcomes = [3]Outcome{HomeWin, Draw, AwayWin}

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "Home win"
	case Draw:
		return "Draw"
	case AwayWin:
		return "Away win"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// OddsTriplet holds the decimal odds of one match ordered home, draw, away.
type OddsTriplet [3]float64

// NewOddsTriplet builds a validated triplet.
func NewOddsTriplet(home, draw, away float64) (OddsTriplet, error) {
	t := OddsTriplet{home, draw, away}
	if err := t.Validate(); err != nil {
		return OddsTriplet{}, err
	}
	return t, nil
}

// ParseOddsTriplet parses three odd strings into a triplet, failing on the
// first value that is not a positive decimal number.
func ParseOddsTriplet(home, draw, away string) (OddsTriplet, error) {
	var t OddsTriplet
	for i, raw := range [3]string{home, draw, away} {
		v, err := ParseOdd(raw)
		if err != nil {
			return OddsTriplet{}, fmt.Errorf("%s odd: %w", Outcomes[i], err)
		}
		t[i] = v
	}
	return t, nil
}

// Home returns the home win odd.
func (t OddsTriplet) Home() float64 { return t[HomeWin] }

// Draw returns the draw odd.
func (t OddsTriplet) Draw() float64 { return t[Draw] }

// Away returns the away win odd.
func (t OddsTriplet) Away() float64 { return t[AwayWin] }

// Validate checks that every odd is a finite positive number.
func (t OddsTriplet) Validate() error {
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s odd: %w: %v", Outcomes[i], ErrInvalidOdd, v)
		}
		if v <= 0 {
			return fmt.Errorf("%s odd: %w: %v", Outcomes[i], ErrNonPositiveOdd, v)
		}
	}
	return nil
}

func (t OddsTriplet) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", t[0], t[1], t[2])
}

// ParseOdd converts a scraped odd string (period decimal separator) into a
// number. Empty, non-numeric and non-positive values are rejected.
func ParseOdd(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidOdd)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdd, raw)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %s", ErrNonPositiveOdd, d.String())
	}

	v, _ := d.Float64()
	return v, nil
}

// OddsRange bounds the odd values accepted from scraped pages.
type OddsRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultOddsRange is the plausible bookmaker range for 1X2 football odds.
var DefaultOddsRange = OddsRange{Min: 1.01, Max: 20.0}

// Contains reports whether v lies within [Min, Max].
func (r OddsRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ContainsStrict reports whether v lies within (Min, Max).
func (r OddsRange) ContainsStrict(v float64) bool {
	return v > r.Min && v < r.Max
}
