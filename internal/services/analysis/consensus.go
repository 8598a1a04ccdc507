package analysis

import (
	"context"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	applogger "ChartPulse/pkg/logger"
)

const consensusMinBars = 10

type horizonSpec struct {
	label    string
	rng      domrepo.Range
	interval domrepo.Interval
}

var consensusHorizons = []horizonSpec{
	{label: "short", rng: domrepo.Range1mo, interval: domrepo.Interval1d},
	{label: "medium", rng: domrepo.Range3mo, interval: domrepo.Interval1d},
	{label: "long", rng: domrepo.Range1y, interval: domrepo.Interval1wk},
}

// Consensus votes a directional read across independently fetched horizons.
// Each horizon is classified at standard indicator parameters; a failed fetch
// drops that horizon instead of failing the vote.
type Consensus struct {
	provider domrepo.BarProvider
	log      *applogger.Logger
}

func NewConsensus(provider domrepo.BarProvider, log *applogger.Logger) *Consensus {
	return &Consensus{provider: provider, log: log}
}

// Analyze fetches the three fixed horizons and merges their signals.
func (c *Consensus) Analyze(ctx context.Context, symbol string) *models.MultiTimeframe {
	out := &models.MultiTimeframe{
		Consensus: models.ConsensusInsufficient,
		Horizons:  []models.HorizonSignal{},
	}

	for _, h := range consensusHorizons {
		bars, err := c.provider.GetBars(ctx, symbol, h.rng, h.interval)
		if err != nil {
			c.log.Warn("horizon fetch failed, skipping",
				applogger.String("symbol", symbol),
				applogger.String("horizon", h.label),
				applogger.Error(err))
			continue
		}
		if len(bars) < consensusMinBars {
			c.log.Debug("horizon too short, skipping",
				applogger.String("symbol", symbol),
				applogger.String("horizon", h.label),
				applogger.Int("bars", len(bars)))
			continue
		}
		out.Horizons = append(out.Horizons, classifyHorizon(h.label, bars))
	}

	total := len(out.Horizons)
	if total < 2 {
		return out
	}

	counts := map[string]int{}
	for _, h := range out.Horizons {
		counts[h.Overall]++
	}
	switch {
	case counts[models.SignalBullish] >= 2:
		out.Consensus = models.SignalBullish
		out.Confidence = float64(counts[models.SignalBullish]) / float64(total) * 100
	case counts[models.SignalBearish] >= 2:
		out.Consensus = models.SignalBearish
		out.Confidence = float64(counts[models.SignalBearish]) / float64(total) * 100
	default:
		out.Consensus = models.ConsensusMixed
		out.Confidence = 50
	}
	return out
}

// classifyHorizon reads the latest defined indicator values at standard
// parameters into categorical signals and takes a 2-of-3 majority.
func classifyHorizon(label string, bars []models.Bar) models.HorizonSignal {
	output := Compute(bars, DefaultConfig())
	signals := map[string]string{
		models.IndicatorOscillator: classifyOscillator(lastDefined(output.Oscillator)),
		models.IndicatorMomentum:   classifyMomentum(lastDefined(output.Momentum.Line), lastDefined(output.Momentum.Signal)),
		models.IndicatorBands:      classifyBands(lastDefined(models.Closes(bars)), lastDefined(output.Bands.Upper), lastDefined(output.Bands.Lower)),
	}

	counts := map[string]int{}
	for _, s := range signals {
		counts[s]++
	}
	overall := models.SignalNeutral
	if counts[models.SignalBullish] >= 2 {
		overall = models.SignalBullish
	} else if counts[models.SignalBearish] >= 2 {
		overall = models.SignalBearish
	}
	return models.HorizonSignal{Horizon: label, Signals: signals, Overall: overall, Bars: len(bars)}
}

func classifyOscillator(v float64) string {
	switch {
	case !defined(v):
		return models.SignalNeutral
	case v > 70:
		return models.SignalBearish
	case v < 30:
		return models.SignalBullish
	default:
		return models.SignalNeutral
	}
}

func classifyMomentum(line, signal float64) string {
	if !defined(line) || !defined(signal) {
		return models.SignalNeutral
	}
	switch {
	case line-signal > 0:
		return models.SignalBullish
	case line-signal < 0:
		return models.SignalBearish
	default:
		return models.SignalNeutral
	}
}

func classifyBands(close, upper, lower float64) string {
	if !defined(close) || !defined(upper) || !defined(lower) {
		return models.SignalNeutral
	}
	switch {
	case close > upper:
		return models.SignalBearish
	case close < lower:
		return models.SignalBullish
	default:
		return models.SignalNeutral
	}
}
