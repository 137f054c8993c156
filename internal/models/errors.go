package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrInvalidOdd     = errors.New("invalid odd value")
	ErrNonPositiveOdd = errors.New("odd must be positive")
	ErrLengthMismatch = errors.New("names and odds length mismatch")
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrSiteCount      = errors.New("unexpected number of sites")
	ErrInvalidStake   = errors.New("stake must be positive")
	ErrNoMatches      = errors.New("no matches common to all sites")
)

// LengthMismatchError reports a names/odds sequence pair that lost its
// index alignment. It is a contract violation, never extraction noise.
type LengthMismatchError struct {
	Stage string
	Site  string
	Names int
	Odds  int
}

func (e *LengthMismatchError) Error() string {
	if e.Site != "" {
		return fmt.Sprintf("%s: site %s has %d names and %d odds triplets", e.Stage, e.Site, e.Names, e.Odds)
	}
	return fmt.Sprintf("%s: %d names and %d odds triplets", e.Stage, e.Names, e.Odds)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}
