package analysis

import (
	"ChartPulse/internal/domain/models"
)

const (
	backtestLookbackDays = 30
	backtestMinExtraBars = 20

	oscLookahead      = 5
	momentumLookahead = 3
	bandsLookahead    = 3
	vwapLookahead     = 2
)

const backtestDisclaimer = "Historical signal performance over a short trailing window; descriptive only, not a forecast."

// Backtest replays each indicator's entry rule over the trailing window using
// the regime-adapted parameters and reports realized look-ahead returns. An
// indicator with no qualifying firing reports all-zero fields.
func Backtest(bars []models.Bar, th models.RegimeThresholds) models.BacktestReport {
	report := models.BacktestReport{
		Results: map[string]models.BacktestResult{
			models.IndicatorOscillator: {EvalHorizonDays: oscLookahead},
			models.IndicatorMomentum:   {EvalHorizonDays: momentumLookahead},
			models.IndicatorBands:      {EvalHorizonDays: bandsLookahead},
			models.IndicatorVWAP:       {EvalHorizonDays: vwapLookahead},
		},
		Disclaimer: backtestDisclaimer,
	}
	if len(bars) < backtestLookbackDays+backtestMinExtraBars {
		return report
	}

	window := bars
	if len(window) > backtestLookbackDays+backtestMinExtraBars {
		window = window[len(window)-(backtestLookbackDays+backtestMinExtraBars):]
	}
	closes := models.Closes(window)
	output := Compute(window, ConfigFrom(th))

	report.Results[models.IndicatorOscillator] = summarize(oscillatorSamples(closes, output.Oscillator, th), oscLookahead)
	report.Results[models.IndicatorMomentum] = summarize(momentumSamples(closes, output.Momentum), momentumLookahead)
	report.Results[models.IndicatorBands] = summarize(bandSamples(closes, output.Bands), bandsLookahead)
	report.Results[models.IndicatorVWAP] = summarize(vwapSamples(closes, output.VWAP), vwapLookahead)
	return report
}

// oscillatorSamples scores threshold breaches: above the adapted upper bound
// as a sell (entry-exit), below the lower bound as a buy (exit-entry).
func oscillatorSamples(closes, osc []float64, th models.RegimeThresholds) []float64 {
	var samples []float64
	for i := 0; i+oscLookahead < len(closes); i++ {
		if !defined(osc[i]) || !defined(closes[i]) || !defined(closes[i+oscLookahead]) || closes[i] == 0 {
			continue
		}
		entry, exit := closes[i], closes[i+oscLookahead]
		switch {
		case osc[i] > th.OscillatorUpper:
			samples = append(samples, (entry-exit)/entry)
		case osc[i] < th.OscillatorLower:
			samples = append(samples, (exit-entry)/entry)
		}
	}
	return samples
}

// momentumSamples scores line/signal crossings: an upward cross is a buy, a
// downward cross is a sell.
func momentumSamples(closes []float64, m Momentum) []float64 {
	var samples []float64
	for i := 1; i+momentumLookahead < len(closes); i++ {
		prevD := m.Line[i-1] - m.Signal[i-1]
		curD := m.Line[i] - m.Signal[i]
		if !defined(prevD) || !defined(curD) {
			continue
		}
		if !defined(closes[i]) || !defined(closes[i+momentumLookahead]) || closes[i] == 0 {
			continue
		}
		entry, exit := closes[i], closes[i+momentumLookahead]
		switch {
		case prevD <= 0 && curD > 0:
			samples = append(samples, (exit-entry)/entry)
		case prevD >= 0 && curD < 0:
			samples = append(samples, (entry-exit)/entry)
		}
	}
	return samples
}

// bandSamples scores breakouts past either band. Both directions contribute
// (exit-entry)/entry; the asymmetry is intentional and matches the historical
// rule this replays.
func bandSamples(closes []float64, b Bands) []float64 {
	var samples []float64
	for i := 0; i+bandsLookahead < len(closes); i++ {
		if !defined(b.Upper[i]) || !defined(b.Lower[i]) {
			continue
		}
		if !defined(closes[i]) || !defined(closes[i+bandsLookahead]) || closes[i] == 0 {
			continue
		}
		if closes[i] > b.Upper[i] || closes[i] < b.Lower[i] {
			entry, exit := closes[i], closes[i+bandsLookahead]
			samples = append(samples, (exit-entry)/entry)
		}
	}
	return samples
}

// vwapSamples scores close relative to the volume-weighted price bar by bar:
// above contributes a long sample, below a short one.
func vwapSamples(closes, vwap []float64) []float64 {
	var samples []float64
	for i := 0; i+vwapLookahead < len(closes); i++ {
		if !defined(vwap[i]) || !defined(closes[i]) {
			continue
		}
		if !defined(closes[i+vwapLookahead]) || closes[i] == 0 {
			continue
		}
		entry, exit := closes[i], closes[i+vwapLookahead]
		switch {
		case closes[i] > vwap[i]:
			samples = append(samples, (exit-entry)/entry)
		case closes[i] < vwap[i]:
			samples = append(samples, (entry-exit)/entry)
		}
	}
	return samples
}

func summarize(samples []float64, horizon int) models.BacktestResult {
	res := models.BacktestResult{EvalHorizonDays: horizon}
	if len(samples) == 0 {
		return res
	}
	pos := 0
	sum := 0.0
	for _, s := range samples {
		sum += s
		if s > 0 {
			pos++
		}
	}
	res.Signals = len(samples)
	res.Accuracy = float64(pos) / float64(len(samples)) * 100
	res.WinRate = res.Accuracy
	res.AverageReturn = sum / float64(len(samples)) * 100
	return res
}
