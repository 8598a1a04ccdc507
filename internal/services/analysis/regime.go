package analysis

import (
	"fmt"

	"ChartPulse/internal/domain/models"
	applogger "ChartPulse/pkg/logger"
)

// Static defaults the adapter falls back to whenever a regime statistic
// cannot be derived.
const (
	defaultOscUpper = 70.0
	defaultOscLower = 30.0

	// Regime branch parameters for the band envelope.
	highVolBandWindow = 15
	highVolBandMult   = 2.2
	lowVolBandWindow  = 25
	lowVolBandMult    = 1.8

	// Fast momentum spans for strongly trending series.
	fastFastSpan   = 8
	fastSlowSpan   = 21
	fastSignalSpan = 7

	shortVWAPWindow = 10

	// Per-bar return volatility cut lines for the band regime.
	highVolPerBar = 0.03
	lowVolPerBar  = 0.015

	// |slope| / mean(close) above this counts as a strong trend.
	trendStrengthThreshold = 0.005

	// Volume coefficient of variation above this counts as irregular.
	volumeCVThreshold = 1.0

	oscPercentileLookback = 90
	oscMinSamples         = 30
	regimeLookback        = 30
	trendLookback         = 60
)

// Adapter derives per-request indicator parameters from the trailing
// statistical regime of the series. Every branch is a fixed documented
// threshold; failures degrade to the static defaults and are never surfaced.
type Adapter struct {
	log *applogger.Logger
}

func NewAdapter(log *applogger.Logger) *Adapter { return &Adapter{log: log} }

// Adapt produces a complete threshold set from bars and the oscillator
// series computed at static parameters.
func (a *Adapter) Adapt(bars []models.Bar, oscillator []float64) models.RegimeThresholds {
	th := models.RegimeThresholds{
		OscillatorUpper: defaultOscUpper,
		OscillatorLower: defaultOscLower,
		BandWindow:      DefaultConfig().BandWindow,
		BandStdMult:     DefaultConfig().BandStdMult,
		FastSpan:        DefaultConfig().FastSpan,
		SlowSpan:        DefaultConfig().SlowSpan,
		SignalSpan:      DefaultConfig().SignalSpan,
		VWAPWindow:      20,
		Explanations:    map[string]string{},
	}
	th.Explanations[models.IndicatorOscillator] = fmt.Sprintf("static thresholds %.0f/%.0f (insufficient oscillator history)", defaultOscUpper, defaultOscLower)
	th.Explanations[models.IndicatorBands] = "standard regime: window 20, 2.0 std"
	th.Explanations[models.IndicatorMomentum] = "standard spans 12/26/9"
	th.Explanations[models.IndicatorVWAP] = "regular volume: window 20"

	a.adaptOscillator(&th, oscillator)
	a.adaptBands(&th, bars)
	a.adaptMomentum(&th, bars)
	a.adaptVWAP(&th, bars)
	return th
}

func (a *Adapter) adaptOscillator(th *models.RegimeThresholds, oscillator []float64) {
	tail := Tail(oscillator, oscPercentileLookback)
	n := 0
	for _, v := range tail {
		if defined(v) {
			n++
		}
	}
	if n < oscMinSamples {
		return
	}
	upper := Percentile(tail, 80)
	lower := Percentile(tail, 20)
	if !defined(upper) || !defined(lower) {
		return
	}
	// Clamp away from the midline so a flat regime cannot collapse the band.
	if upper < 65 {
		upper = 65
	}
	if lower > 35 {
		lower = 35
	}
	th.OscillatorUpper = upper
	th.OscillatorLower = lower
	th.Explanations[models.IndicatorOscillator] = fmt.Sprintf("thresholds %.1f/%.1f from 20th/80th percentile of trailing %d values", upper, lower, oscPercentileLookback)
}

func (a *Adapter) adaptBands(th *models.RegimeThresholds, bars []models.Bar) {
	rets := Tail(models.Returns(bars), regimeLookback)
	vol := Stdev(rets)
	if !defined(vol) {
		return
	}
	switch {
	case vol > highVolPerBar:
		th.BandWindow = highVolBandWindow
		th.BandStdMult = highVolBandMult
		th.Explanations[models.IndicatorBands] = fmt.Sprintf("high volatility (%.1f%%/bar): window %d, %.1f std", vol*100, highVolBandWindow, highVolBandMult)
	case vol < lowVolPerBar:
		th.BandWindow = lowVolBandWindow
		th.BandStdMult = lowVolBandMult
		th.Explanations[models.IndicatorBands] = fmt.Sprintf("low volatility (%.1f%%/bar): window %d, %.1f std", vol*100, lowVolBandWindow, lowVolBandMult)
	default:
		th.Explanations[models.IndicatorBands] = fmt.Sprintf("normal volatility (%.1f%%/bar): window %d, %.1f std", vol*100, th.BandWindow, th.BandStdMult)
	}
}

func (a *Adapter) adaptMomentum(th *models.RegimeThresholds, bars []models.Bar) {
	closes := models.Closes(bars)
	n := 0
	for _, c := range closes {
		if defined(c) {
			n++
		}
	}
	if n < oscMinSamples {
		return
	}
	tail := Tail(closes, trendLookback)
	slope := LinearSlope(tail)
	mean := Mean(tail)
	if !defined(slope) || !defined(mean) || mean == 0 {
		if a.log != nil {
			a.log.Debug("momentum regime degraded, keeping standard spans")
		}
		return
	}
	strength := slope / mean
	if strength < 0 {
		strength = -strength
	}
	if strength > trendStrengthThreshold {
		th.FastSpan = fastFastSpan
		th.SlowSpan = fastSlowSpan
		th.SignalSpan = fastSignalSpan
		th.Explanations[models.IndicatorMomentum] = fmt.Sprintf("strong trend (strength %.4f): fast spans %d/%d/%d", strength, fastFastSpan, fastSlowSpan, fastSignalSpan)
	} else {
		th.Explanations[models.IndicatorMomentum] = fmt.Sprintf("weak trend (strength %.4f): standard spans 12/26/9", strength)
	}
}

func (a *Adapter) adaptVWAP(th *models.RegimeThresholds, bars []models.Bar) {
	vols := Tail(models.Volumes(bars), regimeLookback)
	mean := Mean(vols)
	std := Stdev(vols)
	if !defined(mean) || !defined(std) || mean == 0 {
		return
	}
	cv := std / mean
	if cv > volumeCVThreshold {
		th.VWAPWindow = shortVWAPWindow
		th.Explanations[models.IndicatorVWAP] = fmt.Sprintf("irregular volume (cv %.2f): window %d", cv, shortVWAPWindow)
	} else {
		th.Explanations[models.IndicatorVWAP] = fmt.Sprintf("regular volume (cv %.2f): window %d", cv, th.VWAPWindow)
	}
}

// ConfigFrom maps a threshold set onto an engine parameter set. The
// oscillator window itself is not adapted, only its decision thresholds.
func ConfigFrom(th models.RegimeThresholds) Config {
	cfg := DefaultConfig()
	cfg.BandWindow = th.BandWindow
	cfg.BandStdMult = th.BandStdMult
	cfg.FastSpan = th.FastSpan
	cfg.SlowSpan = th.SlowSpan
	cfg.SignalSpan = th.SignalSpan
	cfg.VWAPWindow = th.VWAPWindow
	return cfg
}
