package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	internalrepo "ChartPulse/internal/repository"
	"ChartPulse/internal/service/cache"
	"ChartPulse/internal/service/ratelimit"
	"ChartPulse/internal/services/analysis"
	"ChartPulse/internal/usecase"
	applogger "ChartPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeProvider struct {
	err error
}

func (f *fakeProvider) GetBars(context.Context, string, domrepo.Range, domrepo.Interval) ([]models.Bar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return seedBars(300), nil
}

func (f *fakeProvider) GetCompanyInfo(_ context.Context, symbol string) (*models.CompanyInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	price, pe := 100.0, 12.0
	return &models.CompanyInfo{Symbol: symbol, RegularMarketPrice: &price, TrailingPE: &pe}, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordCacheHit(string, bool)   {}
func (nopMetrics) RecordUpstreamAttempt(string)  {}

func seedBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	price := 100.0
	for i := range bars {
		price *= 1.002
		bars[i] = models.Bar{
			Timestamp: 1700000000 + int64(i)*86400,
			Open:      price - 0.5,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
		}
	}
	return bars
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestServer(t *testing.T, provider *fakeProvider, limits RateLimitConfig) *echo.Echo {
	t.Helper()
	log := testLogger(t)
	m := nopMetrics{}

	assembler := analysis.NewAssembler(provider, "SPY", log)
	reports := usecase.NewReportUseCase(assembler, internalrepo.NopReportPublisher{}, m, log)
	info := usecase.NewInfoUseCase(provider, m)

	store := internalrepo.NewMemorySymbolStore()
	entries := []models.SymbolEntry{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
	}
	if err := store.Replace(context.Background(), "NASDAQ", entries); err != nil {
		t.Fatalf("seed symbols: %v", err)
	}
	symbols := usecase.NewSymbolsUseCase(store)

	h := NewStockEchoHandler(
		log, reports, info, symbols,
		cache.NewTTLCache(), time.Minute,
		ratelimit.New(), limits,
		m,
	)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStockAppliesDefaults(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/api/stock?ticker=aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.StockReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", resp.Data.Symbol)
	}
	if resp.Data.Range != "1y" || resp.Data.Interval != "1d" {
		t.Fatalf("defaults not applied: range=%q interval=%q", resp.Data.Range, resp.Data.Interval)
	}
	if len(resp.Data.Timestamps) != 300 {
		t.Fatalf("timestamps = %d", len(resp.Data.Timestamps))
	}
}

func TestStockMissingTickerRejected(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/api/stock")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStockUnknownRangeRejected(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/api/stock?ticker=AAPL&range=10y")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStockRateLimited(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 1, RefillPerSec: 0})

	if rec := doGet(e, "/api/stock?ticker=AAPL"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	if rec := doGet(e, "/api/stock?ticker=AAPL"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", rec.Code)
	}
}

func TestStockServedFromCacheAfterUpstreamFailure(t *testing.T) {
	provider := &fakeProvider{}
	e := newTestServer(t, provider, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	if rec := doGet(e, "/api/stock?ticker=AAPL"); rec.Code != http.StatusOK {
		t.Fatalf("warmup status = %d", rec.Code)
	}

	provider.err = fmt.Errorf("%w: upstream down", domrepo.ErrUpstreamFetch)
	rec := doGet(e, "/api/stock?ticker=AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("cached status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// A different key misses the cache and surfaces the upstream error.
	if rec := doGet(e, "/api/stock?ticker=MSFT"); rec.Code != http.StatusBadGateway {
		t.Fatalf("uncached status = %d", rec.Code)
	}
}

func TestInfoEndpoint(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/api/stock/info?ticker=aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.CompanyReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", resp.Data.Symbol)
	}
	if resp.Data.Stats.Grade == "" {
		t.Fatalf("expected a grade")
	}
}

func TestSymbolsSearch(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/api/symbols?q=AAP")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data usecase.SymbolsResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Count != 1 || resp.Data.Symbols[0].Symbol != "AAPL" {
		t.Fatalf("unexpected result: %+v", resp.Data)
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &fakeProvider{}, RateLimitConfig{Capacity: 100, RefillPerSec: 100})

	rec := doGet(e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
