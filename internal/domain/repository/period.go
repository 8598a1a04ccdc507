package repository

import "fmt"

// Range is a requested lookback span for the primary bar fetch.
type Range string

const (
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
	Range5y  Range = "5y"
)

// Interval is the bar resolution.
type Interval string

const (
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

// Months returns the approximate span of a range in months, 0 for unknown.
func (r Range) Months() int {
	switch r {
	case Range1mo:
		return 1
	case Range3mo:
		return 3
	case Range6mo:
		return 6
	case Range1y:
		return 12
	case Range2y:
		return 24
	case Range5y:
		return 60
	default:
		return 0
	}
}

// IsIntraday reports whether the interval is finer than one day.
func (iv Interval) IsIntraday() bool { return iv == Interval1h }

// ValidateCombination rejects range/interval pairs the supplier cannot serve:
// intraday resolution is only available for the shortest range.
func ValidateCombination(r Range, iv Interval) error {
	if r.Months() == 0 {
		return fmt.Errorf("%w: unsupported range %q", ErrInvalidParameter, r)
	}
	switch iv {
	case Interval1h, Interval1d, Interval1wk, Interval1mo:
	default:
		return fmt.Errorf("%w: unsupported interval %q", ErrInvalidParameter, iv)
	}
	if iv.IsIntraday() && r.Months() > 1 {
		return fmt.Errorf("%w: interval %q requires range <= 1mo", ErrInvalidParameter, iv)
	}
	return nil
}

// ConsensusEligible reports whether the request spans enough history at a
// daily-or-coarser resolution for the multi-horizon consensus to run.
func ConsensusEligible(r Range, iv Interval) bool {
	return r.Months() >= 3 && !iv.IsIntraday()
}
