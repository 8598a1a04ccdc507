package marketdata

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	domrepo "ChartPulse/internal/domain/repository"
	apphttp "ChartPulse/pkg/http"
	applogger "ChartPulse/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

const chartBody = `{"chart":{"result":[{"timestamp":[1700000000,1700086400],
"indicators":{"quote":[{"open":[10,null],"high":[11,12],"low":[9,10],"close":[10.5,11.5],"volume":[1000,2000]}]}}],"error":null}}`

func TestGetBarsParsesNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("expected interval=1d, got %q", got)
		}
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t))
	bars, err := c.GetBars(context.Background(), "TEST", domrepo.Range1mo, domrepo.Interval1d)
	if err != nil {
		t.Fatalf("GetBars: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 10.5 {
		t.Fatalf("expected close 10.5, got %v", bars[0].Close)
	}
	if !math.IsNaN(bars[1].Open) {
		t.Fatalf("expected NaN for null open, got %v", bars[1].Open)
	}
}

func TestGetBarsRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t),
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}))
	if _, err := c.GetBars(context.Background(), "TEST", domrepo.Range1mo, domrepo.Interval1d); err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGetBarsExhaustedRetriesMapsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t),
		WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Delay: time.Millisecond}))
	_, err := c.GetBars(context.Background(), "TEST", domrepo.Range1mo, domrepo.Interval1d)
	if !errors.Is(err, domrepo.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
}

func TestGetBarsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t))
	_, err := c.GetBars(context.Background(), "NOPE", domrepo.Range1mo, domrepo.Interval1d)
	if !errors.Is(err, domrepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGetCompanyInfoMapsFields(t *testing.T) {
	body := `{"quoteSummary":{"result":[{
		"price":{"longName":"Test Corp","regularMarketPrice":{"raw":123.4}},
		"summaryProfile":{"sector":"Technology","country":"United States","longBusinessSummary":"Makes things."},
		"summaryDetail":{"trailingPE":{"raw":14.2}},
		"financialData":{"earningsGrowth":{"raw":0.15},"returnOnEquity":{"raw":0.21},"debtToEquity":{"raw":80}}
	}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("modules"); got == "" {
			t.Errorf("expected modules query parameter")
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t))
	info, err := c.GetCompanyInfo(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("GetCompanyInfo: %v", err)
	}
	if info.LongName == nil || *info.LongName != "Test Corp" {
		t.Fatalf("expected long name, got %v", info.LongName)
	}
	if info.TrailingPE == nil || *info.TrailingPE != 14.2 {
		t.Fatalf("expected trailing pe 14.2, got %v", info.TrailingPE)
	}
	if info.DebtToEquity == nil || *info.DebtToEquity != 80 {
		t.Fatalf("expected debt-to-equity 80, got %v", info.DebtToEquity)
	}
}

func TestGetCompanyInfoWithoutPriceIsNoData(t *testing.T) {
	body := `{"quoteSummary":{"result":[{"price":{"longName":"Ghost Corp"}}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(apphttp.NewClient(), srv.URL, srv.URL, testLogger(t))
	_, err := c.GetCompanyInfo(context.Background(), "GHOST")
	if !errors.Is(err, domrepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
