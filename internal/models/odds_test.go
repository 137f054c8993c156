package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOdd(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr error
	}{
		{name: "plain decimal", raw: "2.50", want: 2.5},
		{name: "surrounding whitespace", raw: "  1.85\n", want: 1.85},
		{name: "integer", raw: "3", want: 3},
		{name: "empty", raw: "", wantErr: ErrInvalidOdd},
		{name: "comma separator", raw: "2,5", wantErr: ErrInvalidOdd},
		{name: "text", raw: "draw", wantErr: ErrInvalidOdd},
		{name: "zero", raw: "0", wantErr: ErrNonPositiveOdd},
		{name: "negative", raw: "-1.5", wantErr: ErrNonPositiveOdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOdd(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseOddsTriplet(t *testing.T) {
	triplet, err := ParseOddsTriplet("2.5", "3.0", "4.2")
	require.NoError(t, err)
	assert.Equal(t, OddsTriplet{2.5, 3.0, 4.2}, triplet)
	assert.Equal(t, 2.5, triplet.Home())
	assert.Equal(t, 3.0, triplet.Draw())
	assert.Equal(t, 4.2, triplet.Away())

	_, err = ParseOddsTriplet("2.5", "abc", "4.2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOdd)
	assert.Contains(t, err.Error(), "Draw odd")
}

func TestNewOddsTriplet(t *testing.T) {
	_, err := NewOddsTriplet(2.0, 3.0, 4.0)
	assert.NoError(t, err)

	_, err = NewOddsTriplet(2.0, 0, 4.0)
	assert.ErrorIs(t, err, ErrNonPositiveOdd)

	_, err = NewOddsTriplet(math.Inf(1), 3.0, 4.0)
	assert.ErrorIs(t, err, ErrInvalidOdd)
}

func TestOddsRange(t *testing.T) {
	r := DefaultOddsRange

	assert.True(t, r.Contains(1.01))
	assert.True(t, r.Contains(20.0))
	assert.False(t, r.Contains(1.0))
	assert.False(t, r.Contains(25.0))

	assert.False(t, r.ContainsStrict(1.01))
	assert.False(t, r.ContainsStrict(20.0))
	assert.True(t, r.ContainsStrict(1.02))
}

func TestSiteDatasetValidate(t *testing.T) {
	ds := SiteDataset{
		Site:  "alpha",
		Names: []string{"A vs B", "C vs D"},
		Odds:  []OddsTriplet{{2, 3, 4}},
	}

	err := ds.Validate("grouping")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	var mismatch *LengthMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Names)
	assert.Equal(t, 1, mismatch.Odds)
	assert.Equal(t, "alpha", mismatch.Site)

	truncated := ds.Truncate(1)
	assert.NoError(t, truncated.Validate("grouping"))
	assert.Len(t, ds.Names, 2, "truncate must not modify the original")
}

func TestStakePlanMargin(t *testing.T) {
	plan := StakePlan{InverseSum: 0.97, Stakes: [3]float64{100, 200, 300}}
	assert.InDelta(t, 0.03, plan.Margin(), 1e-9)
	assert.InDelta(t, 600, plan.TotalStaked(), 1e-9)
}

func TestScanResultSourceSite(t *testing.T) {
	result := ScanResult{
		Corpus: AlignedCorpus{Sites: []AlignedSite{{Site: "a"}, {Site: "b"}, {Site: "c"}}},
		Selection: OptimalSelection{
			Sources: [3]int{1, 2, 0},
		},
	}

	assert.Equal(t, "b", result.SourceSite(HomeWin))
	assert.Equal(t, "c", result.SourceSite(Draw))
	assert.Equal(t, "a", result.SourceSite(AwayWin))
}
