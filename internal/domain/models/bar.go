package models

import (
	"math"
	"time"
)

// Bar is one OHLCV sample. Timestamp is UTC epoch seconds. Price or volume
// fields the supplier could not fill are NaN, never zero, so downstream math
// can tell "missing" from "flat".
type Bar struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Time returns the bar timestamp as UTC time.
func (b Bar) Time() time.Time { return time.Unix(b.Timestamp, 0).UTC() }

// Closes extracts the close series from bars.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume series from bars.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// Timestamps extracts epoch-second timestamps from bars.
func Timestamps(bars []Bar) []int64 {
	out := make([]int64, len(bars))
	for i, b := range bars {
		out[i] = b.Timestamp
	}
	return out
}

// Returns computes close-to-close percent changes. The result has one entry
// per bar pair; entries where either close is NaN or the previous close is
// zero are NaN.
func Returns(bars []Bar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Close, bars[i].Close
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = (cur - prev) / prev
	}
	return out
}

// SymbolEntry is one row of the tradable-symbol reference list.
type SymbolEntry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market string `json:"market"`
}
