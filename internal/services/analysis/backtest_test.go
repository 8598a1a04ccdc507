package analysis

import (
	"testing"

	"ChartPulse/internal/domain/models"
)

func staticThresholds() models.RegimeThresholds {
	return models.RegimeThresholds{
		OscillatorUpper: 70,
		OscillatorLower: 30,
		BandWindow:      20,
		BandStdMult:     2.0,
		FastSpan:        12,
		SlowSpan:        26,
		SignalSpan:      9,
		VWAPWindow:      20,
	}
}

func TestBacktestShortSeriesZeroed(t *testing.T) {
	rep := Backtest(trendingBars(10, 1), staticThresholds())
	if len(rep.Results) != 4 {
		t.Fatalf("expected 4 indicator results, got %d", len(rep.Results))
	}
	for key, res := range rep.Results {
		if res.Signals != 0 || res.Accuracy != 0 || res.AverageReturn != 0 || res.WinRate != 0 {
			t.Fatalf("expected zeroed result for %s on short series, got %+v", key, res)
		}
		if res.EvalHorizonDays == 0 {
			t.Fatalf("evaluation horizon missing for %s", key)
		}
	}
	if rep.Disclaimer == "" {
		t.Fatalf("expected disclaimer")
	}
}

func TestBacktestNoQualifyingSignals(t *testing.T) {
	// A gently oscillating series long enough to qualify but never
	// breaching the oscillator thresholds or the bands.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
		if i%2 == 0 {
			closes[i] = 100.01
		}
	}
	rep := Backtest(barsFromCloses(closes), staticThresholds())
	osc := rep.Results[models.IndicatorOscillator]
	if osc.Signals != 0 {
		t.Fatalf("expected no oscillator signals, got %d", osc.Signals)
	}
	if osc.Accuracy != 0 || osc.AverageReturn != 0 || osc.WinRate != 0 {
		t.Fatalf("zero-signal result must be all zero, got %+v", osc)
	}
}

func TestBacktestOscillatorBuySignal(t *testing.T) {
	// A collapse drives the oscillator under 30, then a rebound makes the
	// buy profitable within the look-ahead window.
	closes := make([]float64, 60)
	closes[0] = 100
	for i := 1; i < 60; i++ {
		switch {
		case i < 40:
			closes[i] = closes[i-1] + 0.2
		case i < 50:
			closes[i] = closes[i-1] - 3
		default:
			closes[i] = closes[i-1] + 4
		}
	}
	rep := Backtest(barsFromCloses(closes), staticThresholds())
	osc := rep.Results[models.IndicatorOscillator]
	if osc.Signals == 0 {
		t.Fatalf("expected oscillator signals from the collapse")
	}
	if osc.WinRate != osc.Accuracy {
		t.Fatalf("accuracy and win rate must agree, got %v vs %v", osc.Accuracy, osc.WinRate)
	}
}

func TestVWAPSamplesEveryBarAboveLevel(t *testing.T) {
	// Close sits above the volume-weighted price on every bar; each bar with
	// a look-ahead close must contribute a long sample.
	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10}
	vwap := []float64{9, 9, 9, 9, 9, 9, 9, 9}
	samples := vwapSamples(closes, vwap)
	want := len(closes) - vwapLookahead
	if len(samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(samples))
	}
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("flat closes must yield zero returns, sample %d = %v", i, s)
		}
	}
}

func TestVWAPSamplesShortSideBelowLevel(t *testing.T) {
	// Declining closes below the volume-weighted price: each short sample
	// (entry-exit)/entry realizes a gain.
	closes := []float64{10, 9, 8, 7, 6, 5}
	vwap := []float64{12, 12, 12, 12, 12, 12}
	samples := vwapSamples(closes, vwap)
	want := len(closes) - vwapLookahead
	if len(samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(samples))
	}
	for i, s := range samples {
		if s <= 0 {
			t.Fatalf("short sample %d should be positive, got %v", i, s)
		}
	}
}

func TestBacktestVWAPCountsOneSidedSeries(t *testing.T) {
	// A steady uptrend keeps close above the trailing volume-weighted price
	// without ever crossing it; the level rule must still produce signals.
	closes := make([]float64, 60)
	closes[0] = 100
	for i := 1; i < 60; i++ {
		closes[i] = closes[i-1] + 0.5
	}
	rep := Backtest(barsFromCloses(closes), staticThresholds())
	if got := rep.Results[models.IndicatorVWAP].Signals; got == 0 {
		t.Fatalf("expected vwap signals on a one-sided series, got 0")
	}
}

func TestBacktestUsesAdaptedThresholds(t *testing.T) {
	closes := make([]float64, 60)
	closes[0] = 100
	for i := 1; i < 60; i++ {
		closes[i] = closes[i-1] + 0.5
	}
	th := staticThresholds()
	// An impossible upper threshold suppresses sell signals entirely.
	th.OscillatorUpper = 101
	th.OscillatorLower = -1
	rep := Backtest(barsFromCloses(closes), th)
	if got := rep.Results[models.IndicatorOscillator].Signals; got != 0 {
		t.Fatalf("expected thresholds to suppress all signals, got %d", got)
	}
}
