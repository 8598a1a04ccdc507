package analysis

import (
	"context"
	"fmt"
	"time"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	applogger "ChartPulse/pkg/logger"
)

// Assembler orchestrates the full per-symbol analysis pipeline and composes
// the report. It is stateless; every report is recomputed from scratch.
type Assembler struct {
	provider  domrepo.BarProvider
	consensus *Consensus
	adapter   *Adapter
	benchmark string
	log       *applogger.Logger
}

func NewAssembler(provider domrepo.BarProvider, benchmark string, log *applogger.Logger) *Assembler {
	return &Assembler{
		provider:  provider,
		consensus: NewConsensus(provider, log),
		adapter:   NewAdapter(log),
		benchmark: benchmark,
		log:       log,
	}
}

// BuildReport fetches bars for symbol and runs the whole pipeline: static
// indicators, regime adaptation, re-run at adapted parameters, confidence,
// risk, cross-horizon consensus when the request qualifies, and the trailing
// backtest. Only the primary fetch is fatal; benchmark and horizon fetches
// degrade their sections instead.
func (a *Assembler) BuildReport(ctx context.Context, symbol string, r domrepo.Range, iv domrepo.Interval, benchmarkSymbol string) (*models.StockReport, error) {
	if err := domrepo.ValidateCombination(r, iv); err != nil {
		return nil, err
	}
	if benchmarkSymbol == "" {
		benchmarkSymbol = a.benchmark
	}

	started := time.Now()
	bars, err := a.provider.GetBars(ctx, symbol, r, iv)
	if err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", domrepo.ErrNoData, symbol)
	}

	static := Compute(bars, DefaultConfig())
	thresholds := a.adapter.Adapt(bars, static.Oscillator)
	adapted := Compute(bars, ConfigFrom(thresholds))

	confidence := ScoreConfidence(bars)

	var benchmark []models.Bar
	if benchmarkSymbol != "" && benchmarkSymbol != symbol {
		benchmark, err = a.provider.GetBars(ctx, benchmarkSymbol, r, iv)
		if err != nil {
			a.log.Warn("benchmark fetch failed, beta omitted",
				applogger.String("symbol", symbol),
				applogger.String("benchmark", benchmarkSymbol),
				applogger.Error(err))
			benchmark = nil
		}
	}
	risk := AnalyzeRisk(bars, benchmark)

	var mtf *models.MultiTimeframe
	if domrepo.ConsensusEligible(r, iv) {
		mtf = a.consensus.Analyze(ctx, symbol)
	}

	backtest := Backtest(bars, thresholds)

	report := &models.StockReport{
		Symbol:     symbol,
		Range:      string(r),
		Interval:   string(iv),
		Timestamps: models.Timestamps(bars),
		OHLC:       ohlcSeries(bars),
		BBands: models.BandSeries{
			Upper:  Nullify(adapted.Bands.Upper),
			Middle: Nullify(adapted.Bands.Middle),
			Lower:  Nullify(adapted.Bands.Lower),
		},
		Oscillator: Nullify(adapted.Oscillator),
		Momentum: models.MomentumSeries{
			Line:      Nullify(adapted.Momentum.Line),
			Signal:    Nullify(adapted.Momentum.Signal),
			Histogram: Nullify(adapted.Momentum.Histogram),
		},
		VWAP:              Nullify(adapted.VWAP),
		Confidence:        confidence,
		DynamicThresholds: thresholds,
		RiskMetrics:       risk,
		MultiTimeframe:    mtf,
		Backtest:          backtest,
	}

	a.log.Info("report assembled",
		applogger.String("symbol", symbol),
		applogger.String("range", string(r)),
		applogger.String("interval", string(iv)),
		applogger.Int("bars", len(bars)),
		applogger.Duration("took", time.Since(started)))
	return report, nil
}

func ohlcSeries(bars []models.Bar) models.OHLCSeries {
	n := len(bars)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range bars {
		open[i], high[i], low[i], closes[i], volume[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}
	return models.OHLCSeries{
		Open:   Nullify(open),
		High:   Nullify(high),
		Low:    Nullify(low),
		Close:  Nullify(closes),
		Volume: Nullify(volume),
	}
}
