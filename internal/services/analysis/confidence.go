package analysis

import (
	"fmt"

	"ChartPulse/internal/domain/models"
	"ChartPulse/pkg/util"
)

const (
	confidenceBase = 85
	confidenceMin  = 30
	confidenceMax  = 100
)

// ScoreConfidence rates each indicator's current reliability from trailing
// volume, volatility, and data-quality metrics, and attaches advisory
// warnings derived from the same metrics.
func ScoreConfidence(bars []models.Bar) models.ConfidenceReport {
	m := confidenceMetrics(bars)
	n := len(bars)

	common := 0
	switch {
	case m.VolumeRatio < 0.3:
		common -= 25
	case m.VolumeRatio < 0.7:
		common -= 10
	}
	if m.VolumeRatio > 3.0 {
		common -= 5
	}
	switch {
	case m.VolatilityRatio > 2.5:
		common -= 20
	case m.VolatilityRatio > 1.8:
		common -= 10
	}
	switch {
	case m.DataCompleteness < 0.8:
		common -= 15
	case m.DataCompleteness < 0.9:
		common -= 5
	}

	scores := map[string]int{}

	bands := confidenceBase + common
	if m.VolatilityRatio > 1.2 && m.VolatilityRatio < 2.0 {
		bands += 5
	}
	scores[models.IndicatorBands] = clampConfidence(bands)

	osc := confidenceBase + common
	switch {
	case n < 14:
		osc -= 30
	case n < 20:
		osc -= 20
	}
	scores[models.IndicatorOscillator] = clampConfidence(osc)

	mom := confidenceBase + common
	if m.VolatilityRatio > 2.0 {
		mom -= 15
	}
	if n < 26 {
		mom -= 25
	}
	scores[models.IndicatorMomentum] = clampConfidence(mom)

	vwap := confidenceBase + common
	if m.VolumeRatio > 1.5 {
		vwap += 5
	}
	if m.VolumeRatio < 0.5 {
		vwap -= 10
	}
	scores[models.IndicatorVWAP] = clampConfidence(vwap)

	return models.ConfidenceReport{
		Scores:   scores,
		Metrics:  m,
		Warnings: confidenceWarnings(bars, m),
	}
}

func confidenceMetrics(bars []models.Bar) models.ConfidenceMetrics {
	m := models.ConfidenceMetrics{VolumeRatio: 1.0, VolatilityRatio: 1.0, DataCompleteness: 1.0}

	vols := models.Volumes(bars)
	short := Mean(Tail(vols, 5))
	long := Mean(Tail(vols, 30))
	if defined(short) && defined(long) && long > 0 {
		m.VolumeRatio = short / long
	}

	rets := models.Returns(bars)
	recent := Stdev(Tail(rets, 10))
	baseline := Stdev(Tail(rets, 60))
	if defined(recent) && defined(baseline) && baseline > 0 {
		m.VolatilityRatio = recent / baseline
	}

	if len(bars) > 0 {
		valid := 0
		for _, b := range bars {
			if defined(b.Close) {
				valid++
			}
		}
		m.DataCompleteness = float64(valid) / float64(len(bars))
	}
	return m
}

func confidenceWarnings(bars []models.Bar, m models.ConfidenceMetrics) []models.Warning {
	ws := []models.Warning{}
	if m.VolumeRatio > 3.0 {
		ws = append(ws, models.Warning{Severity: "warning", Message: fmt.Sprintf("volume spike: recent volume %.1fx the 30-bar average", m.VolumeRatio)})
	}
	if m.VolumeRatio < 0.3 {
		ws = append(ws, models.Warning{Severity: "warning", Message: fmt.Sprintf("volume drought: recent volume %.1fx the 30-bar average", m.VolumeRatio)})
	}
	if m.VolatilityRatio > 2.5 {
		ws = append(ws, models.Warning{Severity: "warning", Message: fmt.Sprintf("volatility spike: recent volatility %.1fx the 60-bar baseline", m.VolatilityRatio)})
	}
	if m.VolatilityRatio < 0.5 {
		ws = append(ws, models.Warning{Severity: "info", Message: "unusually calm: recent volatility well below the 60-bar baseline"})
	}
	switch {
	case m.DataCompleteness < 0.8:
		ws = append(ws, models.Warning{Severity: "error", Message: fmt.Sprintf("data completeness %.0f%%, indicator values unreliable", m.DataCompleteness*100)})
	case m.DataCompleteness < 0.9:
		ws = append(ws, models.Warning{Severity: "warning", Message: fmt.Sprintf("data completeness %.0f%%", m.DataCompleteness*100)})
	}
	if len(bars) < 30 {
		ws = append(ws, models.Warning{Severity: "warning", Message: fmt.Sprintf("short history: %d bars, longer indicators degrade", len(bars))})
	}
	for _, b := range bars {
		if util.IsWeekend(b.Time()) {
			ws = append(ws, models.Warning{Severity: "info", Message: "series contains weekend bars"})
			break
		}
	}
	return ws
}

func clampConfidence(v int) int {
	if v < confidenceMin {
		return confidenceMin
	}
	if v > confidenceMax {
		return confidenceMax
	}
	return v
}
