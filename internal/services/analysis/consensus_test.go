package analysis

import (
	"context"
	"fmt"
	"testing"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	applogger "ChartPulse/pkg/logger"
)

type fakeProvider struct {
	bars map[domrepo.Range][]models.Bar
	err  error
}

func (f *fakeProvider) GetBars(_ context.Context, _ string, r domrepo.Range, _ domrepo.Interval) ([]models.Bar, error) {
	if f.err != nil {
		return nil, f.err
	}
	bars, ok := f.bars[r]
	if !ok {
		return nil, fmt.Errorf("%w: no horizon data", domrepo.ErrUpstreamFetch)
	}
	return bars, nil
}

func (f *fakeProvider) GetCompanyInfo(context.Context, string) (*models.CompanyInfo, error) {
	return nil, fmt.Errorf("%w: not supported", domrepo.ErrUpstreamFetch)
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func trendingBars(n int, step float64) []models.Bar {
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		closes[i] = closes[i-1] + step
	}
	return barsFromCloses(closes)
}

func TestConsensusSingleHorizonInsufficient(t *testing.T) {
	provider := &fakeProvider{bars: map[domrepo.Range][]models.Bar{
		domrepo.Range1mo: trendingBars(22, 1),
	}}
	c := NewConsensus(provider, testLogger(t))

	out := c.Analyze(context.Background(), "TEST")
	if out.Consensus != models.ConsensusInsufficient {
		t.Fatalf("expected insufficient_data, got %q", out.Consensus)
	}
	if out.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", out.Confidence)
	}
	if len(out.Horizons) != 1 {
		t.Fatalf("expected 1 horizon, got %d", len(out.Horizons))
	}
}

func TestConsensusAllFetchesFail(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w: upstream down", domrepo.ErrUpstreamFetch)}
	c := NewConsensus(provider, testLogger(t))

	out := c.Analyze(context.Background(), "TEST")
	if out.Consensus != models.ConsensusInsufficient || out.Confidence != 0 {
		t.Fatalf("expected insufficient_data/0, got %q/%v", out.Consensus, out.Confidence)
	}
}

func TestConsensusAllHorizonsVote(t *testing.T) {
	provider := &fakeProvider{bars: map[domrepo.Range][]models.Bar{
		domrepo.Range1mo: trendingBars(22, 0.1),
		domrepo.Range3mo: trendingBars(64, 0.1),
		domrepo.Range1y:  trendingBars(52, 0.1),
	}}
	c := NewConsensus(provider, testLogger(t))
	out := c.Analyze(context.Background(), "TEST")
	if len(out.Horizons) != 3 {
		t.Fatalf("expected 3 horizons, got %d", len(out.Horizons))
	}
	if out.Consensus == models.ConsensusInsufficient {
		t.Fatalf("expected a vote with 3 horizons, got insufficient_data")
	}
	if out.Consensus == models.ConsensusMixed && out.Confidence != 50 {
		t.Fatalf("mixed consensus must carry confidence 50, got %v", out.Confidence)
	}
}

func TestClassifyOscillatorRules(t *testing.T) {
	if got := classifyOscillator(75); got != models.SignalBearish {
		t.Fatalf("expected bearish above 70, got %q", got)
	}
	if got := classifyOscillator(25); got != models.SignalBullish {
		t.Fatalf("expected bullish below 30, got %q", got)
	}
	if got := classifyOscillator(50); got != models.SignalNeutral {
		t.Fatalf("expected neutral midband, got %q", got)
	}
}
