package analysis

import (
	"math"
	"testing"

	"ChartPulse/internal/domain/models"
)

func TestConfidenceClampedOnAdversarialSeries(t *testing.T) {
	// Volume collapse, volatility spike, and missing closes all at once.
	closes := make([]float64, 70)
	vols := make([]float64, 70)
	for i := range closes {
		closes[i] = 100 + math.Sin(float64(i))
		vols[i] = 100000
		if i >= 60 {
			closes[i] = closes[i-1] * (1 + 0.2*math.Sin(float64(i)*3))
			vols[i] = 1000
		}
		if i%4 == 0 {
			closes[i] = math.NaN()
		}
	}
	bars := barsFromCloses(closes)
	for i := range bars {
		bars[i].Volume = vols[i]
	}

	rep := ScoreConfidence(bars)
	for key, score := range rep.Scores {
		if score < 30 || score > 100 {
			t.Fatalf("confidence for %s out of [30,100]: %d", key, score)
		}
	}
	if len(rep.Scores) != 4 {
		t.Fatalf("expected 4 indicator scores, got %d", len(rep.Scores))
	}
}

func TestConfidenceDefaultsOnShortHistory(t *testing.T) {
	rep := ScoreConfidence(barsFromCloses([]float64{10, 11, 12}))
	if rep.Metrics.VolumeRatio != 1.0 {
		t.Fatalf("expected default volume ratio 1.0, got %v", rep.Metrics.VolumeRatio)
	}
	if rep.Metrics.VolatilityRatio != 1.0 {
		t.Fatalf("expected default volatility ratio 1.0, got %v", rep.Metrics.VolatilityRatio)
	}
	if rep.Metrics.DataCompleteness != 1.0 {
		t.Fatalf("expected completeness 1.0, got %v", rep.Metrics.DataCompleteness)
	}
	// Short-history penalties must land on oscillator and momentum.
	if rep.Scores[models.IndicatorOscillator] >= rep.Scores[models.IndicatorBands] {
		t.Fatalf("expected oscillator penalized below bands: %d vs %d",
			rep.Scores[models.IndicatorOscillator], rep.Scores[models.IndicatorBands])
	}
	found := false
	for _, w := range rep.Warnings {
		if w.Severity == "warning" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a short-history warning, got %v", rep.Warnings)
	}
}

func TestConfidenceCleanSeriesNoWarnings(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 0.5*math.Sin(float64(i)/3)
	}
	bars := barsFromCloses(closes)
	rep := ScoreConfidence(bars)
	for _, w := range rep.Warnings {
		if w.Severity == "error" {
			t.Fatalf("unexpected error warning on clean series: %v", w)
		}
	}
	if rep.Metrics.DataCompleteness != 1.0 {
		t.Fatalf("expected full completeness, got %v", rep.Metrics.DataCompleteness)
	}
}
