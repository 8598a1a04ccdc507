package models

// Indicator keys used across confidence scores, dynamic thresholds, and
// backtest results.
const (
	IndicatorBands      = "bbands"
	IndicatorOscillator = "oscillator"
	IndicatorMomentum   = "momentum"
	IndicatorVWAP       = "vwap"
)

// Signal direction labels.
const (
	SignalBullish = "bullish"
	SignalBearish = "bearish"
	SignalNeutral = "neutral"
)

// Consensus labels beyond plain directions.
const (
	ConsensusMixed        = "mixed"
	ConsensusInsufficient = "insufficient_data"
)

// OHLCSeries carries the raw chart arrays aligned with Timestamps. Entries
// the supplier could not fill are nulls.
type OHLCSeries struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// BandSeries is the volatility envelope triplet. Wherever all three are
// non-null, upper >= middle >= lower holds.
type BandSeries struct {
	Upper  []*float64 `json:"upper"`
	Middle []*float64 `json:"middle"`
	Lower  []*float64 `json:"lower"`
}

// MomentumSeries is the MACD-style triplet.
type MomentumSeries struct {
	Line      []*float64 `json:"line"`
	Signal    []*float64 `json:"signal"`
	Histogram []*float64 `json:"histogram"`
}

// Warning is a data-quality or regime advisory attached to the confidence
// section. Severity is one of "info", "warning", "error".
type Warning struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ConfidenceMetrics are the regime ratios the scorer derives from bars.
type ConfidenceMetrics struct {
	VolumeRatio      float64 `json:"volume_ratio"`
	VolatilityRatio  float64 `json:"volatility_ratio"`
	DataCompleteness float64 `json:"data_completeness"`
}

// ConfidenceReport scores each indicator's current reliability in [30,100].
type ConfidenceReport struct {
	Scores   map[string]int    `json:"scores"`
	Metrics  ConfidenceMetrics `json:"metrics"`
	Warnings []Warning         `json:"warnings"`
}

// RegimeThresholds are the per-request adapted indicator parameters. The set
// is total: every field is filled, falling back to the static defaults when
// the regime statistics cannot be derived.
type RegimeThresholds struct {
	OscillatorUpper float64           `json:"oscillator_upper"`
	OscillatorLower float64           `json:"oscillator_lower"`
	BandWindow      int               `json:"band_window"`
	BandStdMult     float64           `json:"band_std_mult"`
	FastSpan        int               `json:"fast_span"`
	SlowSpan        int               `json:"slow_span"`
	SignalSpan      int               `json:"signal_span"`
	VWAPWindow      int               `json:"vwap_window"`
	Explanations    map[string]string `json:"explanations"`
}

// RiskMetrics holds historical risk statistics. Fields that could not be
// computed are null so callers can tell "not computed" from "zero".
type RiskMetrics struct {
	MaxDrawdown          *float64 `json:"max_drawdown"`
	SharpeRatio          *float64 `json:"sharpe_ratio"`
	Beta                 *float64 `json:"beta"`
	AnnualizedVolatility *float64 `json:"annualized_volatility"`
	WinRate              *float64 `json:"win_rate"`
	AnnualizedReturn     *float64 `json:"annualized_return"`
}

// HorizonSignal is one consensus horizon's directional read.
type HorizonSignal struct {
	Horizon string            `json:"horizon"`
	Signals map[string]string `json:"signals"`
	Overall string            `json:"overall"`
	Bars    int               `json:"bars"`
}

// MultiTimeframe is the cross-horizon vote. Confidence is a percentage.
type MultiTimeframe struct {
	Consensus  string          `json:"consensus"`
	Confidence float64         `json:"confidence"`
	Horizons   []HorizonSignal `json:"horizons"`
}

// BacktestResult reports one indicator's historical rule performance over the
// trailing window. All fields are zero when no qualifying signal fired.
type BacktestResult struct {
	Accuracy        float64 `json:"accuracy"`
	AverageReturn   float64 `json:"average_return"`
	WinRate         float64 `json:"win_rate"`
	Signals         int     `json:"signal_count"`
	EvalHorizonDays int     `json:"evaluation_horizon_days"`
}

// BacktestReport groups per-indicator results with the standing disclaimer.
type BacktestReport struct {
	Results    map[string]BacktestResult `json:"results"`
	Disclaimer string                    `json:"disclaimer"`
}

// StockReport is the composite analysis response for one symbol.
type StockReport struct {
	Symbol            string            `json:"symbol"`
	Range             string            `json:"range"`
	Interval          string            `json:"interval"`
	Timestamps        []int64           `json:"timestamp"`
	OHLC              OHLCSeries        `json:"ohlc"`
	BBands            BandSeries        `json:"bbands"`
	Oscillator        []*float64        `json:"oscillator"`
	Momentum          MomentumSeries    `json:"momentum"`
	VWAP              []*float64        `json:"vwap"`
	Confidence        ConfidenceReport  `json:"confidence"`
	DynamicThresholds RegimeThresholds  `json:"dynamic_thresholds"`
	RiskMetrics       RiskMetrics       `json:"risk_metrics"`
	MultiTimeframe    *MultiTimeframe   `json:"multi_timeframe"`
	Backtest          BacktestReport    `json:"backtest"`
}

// ReportEvent is the fire-and-forget message published after a report is
// generated, when the event stream is enabled.
type ReportEvent struct {
	Symbol      string `json:"symbol"`
	Range       string `json:"range"`
	Interval    string `json:"interval"`
	Consensus   string `json:"consensus"`
	GeneratedAt int64  `json:"generated_at"`
}
