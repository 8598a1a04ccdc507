package analysis

import (
	"math"
	"testing"

	"ChartPulse/internal/domain/models"
)

func barsFromCloses(closes []float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: int64(1700000000 + i*86400),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func TestBandsOrdering(t *testing.T) {
	closes := []float64{10, 12, 11, 13, 15, 14, 16, 18, 17, 19, 20, 22, 21, 23, 25, 24, 26, 28, 27, 29, 30, 32, 31, 33, 35}
	b := ComputeBands(closes, 20, 2.0)
	if len(b.Upper) != len(closes) {
		t.Fatalf("expected %d entries, got %d", len(closes), len(b.Upper))
	}
	for i := range closes {
		if !defined(b.Middle[i]) {
			if i >= 19 {
				t.Fatalf("middle band undefined at %d after window filled", i)
			}
			continue
		}
		if b.Upper[i] < b.Middle[i] || b.Middle[i] < b.Lower[i] {
			t.Fatalf("band ordering violated at %d: %v %v %v", i, b.Upper[i], b.Middle[i], b.Lower[i])
		}
	}
}

func TestOscillatorAllGainsSaturates(t *testing.T) {
	osc := ComputeOscillator([]float64{10, 11, 12, 13, 14}, 4)
	got := osc[len(osc)-1]
	if got != 100 {
		t.Fatalf("expected 100 for all-gain window, got %v", got)
	}
}

func TestOscillatorBounded(t *testing.T) {
	closes := []float64{50, 52, 48, 53, 47, 55, 44, 58, 41, 60, 39, 62, 37, 64, 35, 66, 33, 68, 31, 70}
	osc := ComputeOscillator(closes, 14)
	for i, v := range osc {
		if !defined(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Fatalf("oscillator out of range at %d: %v", i, v)
		}
	}
}

func TestOscillatorFlatUndefined(t *testing.T) {
	osc := ComputeOscillator([]float64{10, 10, 10, 10, 10, 10}, 4)
	for i, v := range osc {
		if defined(v) {
			t.Fatalf("expected undefined oscillator on flat series, got %v at %d", v, i)
		}
	}
}

func TestCumulativeVWAP(t *testing.T) {
	bars := []models.Bar{
		{Timestamp: 1, High: 10, Low: 8, Close: 9, Volume: 100},
		{Timestamp: 2, High: 11, Low: 9, Close: 10, Volume: 200},
	}
	vwap := ComputeVWAP(bars, 0)
	want := (9.0*100 + 10.0*200) / 300
	if math.Abs(vwap[1]-want) > 1e-9 {
		t.Fatalf("expected vwap %v, got %v", want, vwap[1])
	}
}

func TestWindowedVWAPWarmup(t *testing.T) {
	bars := barsFromCloses([]float64{10, 11, 12, 13, 14})
	vwap := ComputeVWAP(bars, 3)
	if defined(vwap[0]) || defined(vwap[1]) {
		t.Fatalf("expected undefined vwap before window fills")
	}
	if !defined(vwap[2]) {
		t.Fatalf("expected defined vwap once window fills")
	}
}

func TestMomentumAligned(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	m := ComputeMomentum(closes, 12, 26, 9)
	if len(m.Line) != 60 || len(m.Signal) != 60 || len(m.Histogram) != 60 {
		t.Fatalf("momentum series misaligned: %d %d %d", len(m.Line), len(m.Signal), len(m.Histogram))
	}
	last := len(closes) - 1
	if !defined(m.Histogram[last]) {
		t.Fatalf("expected defined histogram at series end")
	}
	if math.Abs(m.Histogram[last]-(m.Line[last]-m.Signal[last])) > 1e-9 {
		t.Fatalf("histogram != line - signal at %d", last)
	}
}

func TestComputeShortSeriesUndefined(t *testing.T) {
	out := Compute(barsFromCloses([]float64{10, 11, 12}), DefaultConfig())
	for i := range out.Bands.Middle {
		if defined(out.Bands.Middle[i]) {
			t.Fatalf("expected undefined bands on 3-bar series")
		}
		if defined(out.Oscillator[i]) {
			t.Fatalf("expected undefined oscillator on 3-bar series")
		}
	}
}
