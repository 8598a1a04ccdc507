package analysis

import (
	"math"

	"ChartPulse/internal/domain/models"
)

// Config is one indicator parameter set. VWAPWindow 0 selects cumulative
// volume-weighted price from the series start.
type Config struct {
	BandWindow  int
	BandStdMult float64
	OscWindow   int
	FastSpan    int
	SlowSpan    int
	SignalSpan  int
	VWAPWindow  int
}

// DefaultConfig returns the static parameter set used before regime
// adaptation and for the fixed-rule consensus horizons.
func DefaultConfig() Config {
	return Config{
		BandWindow:  20,
		BandStdMult: 2.0,
		OscWindow:   14,
		FastSpan:    12,
		SlowSpan:    26,
		SignalSpan:  9,
		VWAPWindow:  0,
	}
}

// Bands is the rolling mean envelope triplet.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Momentum is the MACD-style triplet.
type Momentum struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// Output bundles all four indicator series, aligned 1:1 with the input bars.
type Output struct {
	Bands      Bands
	Oscillator []float64
	Momentum   Momentum
	VWAP       []float64
}

// Compute runs every indicator over bars with the given parameters. Pure
// computation; outputs with insufficient history stay entirely undefined.
func Compute(bars []models.Bar, cfg Config) Output {
	closes := models.Closes(bars)
	return Output{
		Bands:      ComputeBands(closes, cfg.BandWindow, cfg.BandStdMult),
		Oscillator: ComputeOscillator(closes, cfg.OscWindow),
		Momentum:   ComputeMomentum(closes, cfg.FastSpan, cfg.SlowSpan, cfg.SignalSpan),
		VWAP:       ComputeVWAP(bars, cfg.VWAPWindow),
	}
}

// ComputeBands builds the volatility envelope: rolling mean of close plus and
// minus mult rolling population standard deviations.
func ComputeBands(closes []float64, window int, mult float64) Bands {
	middle := RollingMean(closes, window)
	std := RollingStd(closes, window)
	upper := nanSlice(len(closes))
	lower := nanSlice(len(closes))
	for i := range closes {
		if defined(middle[i]) && defined(std[i]) {
			upper[i] = middle[i] + std[i]*mult
			lower[i] = middle[i] - std[i]*mult
		}
	}
	return Bands{Upper: upper, Middle: middle, Lower: lower}
}

// ComputeOscillator builds the 0-100 bounded gain/loss oscillator using
// simple moving averages of up and down moves. When the loss average is zero
// and the gain average is not, the value saturates at 100; when both are zero
// it stays undefined.
func ComputeOscillator(closes []float64, window int) []float64 {
	n := len(closes)
	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		if !defined(closes[i]) || !defined(closes[i-1]) {
			continue
		}
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i], losses[i] = delta, 0
		} else {
			gains[i], losses[i] = 0, -delta
		}
	}
	avgGain := RollingMean(gains, window)
	avgLoss := RollingMean(losses, window)

	out := nanSlice(n)
	for i := 0; i < n; i++ {
		g, l := avgGain[i], avgLoss[i]
		if !defined(g) || !defined(l) {
			continue
		}
		if l == 0 {
			if g > 0 {
				out[i] = 100
			}
			// both zero: undefined
			continue
		}
		rs := g / l
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// ComputeMomentum builds the fast/slow EMA difference with its smoothed
// signal line and histogram.
func ComputeMomentum(closes []float64, fast, slow, signal int) Momentum {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	line := nanSlice(len(closes))
	for i := range closes {
		if defined(emaFast[i]) && defined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}
	sig := EMA(line, signal)
	hist := nanSlice(len(closes))
	for i := range closes {
		if defined(line[i]) && defined(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return Momentum{Line: line, Signal: sig, Histogram: hist}
}

// ComputeVWAP builds the typical-price volume-weighted average. window 0
// accumulates from the series start; otherwise the ratio is taken over a
// trailing window, undefined until the window fills.
func ComputeVWAP(bars []models.Bar, window int) []float64 {
	n := len(bars)
	out := nanSlice(n)
	pv := make([]float64, n)
	vol := make([]float64, n)
	for i, b := range bars {
		tp := (b.High + b.Low + b.Close) / 3
		if math.IsNaN(tp) || math.IsNaN(b.Volume) {
			pv[i], vol[i] = math.NaN(), math.NaN()
			continue
		}
		pv[i] = tp * b.Volume
		vol[i] = b.Volume
	}

	if window <= 0 {
		sumPV, sumV := 0.0, 0.0
		for i := 0; i < n; i++ {
			if math.IsNaN(pv[i]) {
				continue
			}
			sumPV += pv[i]
			sumV += vol[i]
			if sumV > 0 {
				out[i] = sumPV / sumV
			}
		}
		return out
	}

	for i := window - 1; i < n; i++ {
		sumPV, sumV := 0.0, 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(pv[j]) {
				ok = false
				break
			}
			sumPV += pv[j]
			sumV += vol[j]
		}
		if ok && sumV > 0 {
			out[i] = sumPV / sumV
		}
	}
	return out
}

// lastDefined returns the trailing defined value of a series, NaN when none.
func lastDefined(xs []float64) float64 {
	for i := len(xs) - 1; i >= 0; i-- {
		if defined(xs[i]) {
			return xs[i]
		}
	}
	return math.NaN()
}
