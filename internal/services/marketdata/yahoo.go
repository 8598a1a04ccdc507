package marketdata

import (
	"context"
	"fmt"
	"math"
	"strings"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	apphttp "ChartPulse/pkg/http"
	applogger "ChartPulse/pkg/logger"
)

const quoteSummaryModules = "price,summaryProfile,summaryDetail,financialData"

// Client fetches bar history and company profiles from the public chart and
// quote-summary endpoints. Transient failures are retried per the injected
// policy; retries exhausted map to ErrUpstreamFetch.
type Client struct {
	http            *apphttp.Client
	chartURL        string
	quoteSummaryURL string
	userAgent       string
	retry           RetryPolicy
	metrics         domrepo.Metrics
	log             *applogger.Logger
}

type Option func(*Client)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

func WithMetrics(m domrepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(httpClient *apphttp.Client, chartURL, quoteSummaryURL string, log *applogger.Logger, opts ...Option) *Client {
	c := &Client{
		http:            httpClient,
		chartURL:        strings.TrimRight(chartURL, "/"),
		quoteSummaryURL: strings.TrimRight(quoteSummaryURL, "/"),
		userAgent:       "Mozilla/5.0 (compatible; chartpulse/1.0)",
		retry:           DefaultRetryPolicy(),
		log:             log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chartResponse mirrors the v8 chart payload, only the fields we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetBars fetches the bar history for symbol over the given range and
// interval. Bars come back ordered by timestamp with missing fields as NaN.
func (c *Client) GetBars(ctx context.Context, symbol string, r domrepo.Range, iv domrepo.Interval) ([]models.Bar, error) {
	var payload chartResponse
	url := fmt.Sprintf("%s/%s", c.chartURL, symbol)
	err := c.retry.Do(ctx, func() error {
		c.recordAttempt("chart")
		return c.http.SendAndParse(ctx, &apphttp.RequestOptions{
			Method: apphttp.MethodGet,
			URL:    url,
			Headers: map[string]string{
				"User-Agent": c.userAgent,
			},
			QueryParams: map[string][]string{
				"range":    {string(r)},
				"interval": {string(iv)},
			},
		}, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chart %s: %v", domrepo.ErrUpstreamFetch, symbol, err)
	}

	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("%w: %s: %s", domrepo.ErrNoData, symbol, e.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domrepo.ErrNoData, symbol)
	}

	result := payload.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s: empty chart", domrepo.ErrNoData, symbol)
	}

	quote := result.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, models.Bar{
			Timestamp: ts,
			Open:      deref(quote.Open, i),
			High:      deref(quote.High, i),
			Low:       deref(quote.Low, i),
			Close:     deref(quote.Close, i),
			Volume:    deref(quote.Volume, i),
		})
	}
	return bars, nil
}

// yahooNumber is the {raw, fmt} wrapper around numeric fields.
type yahooNumber struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName           *string     `json:"longName"`
				RegularMarketPrice yahooNumber `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryProfile *struct {
				Sector              *string `json:"sector"`
				Country             *string `json:"country"`
				LongBusinessSummary *string `json:"longBusinessSummary"`
			} `json:"summaryProfile"`
			SummaryDetail *struct {
				TrailingPE yahooNumber `json:"trailingPE"`
			} `json:"summaryDetail"`
			FinancialData *struct {
				EarningsGrowth yahooNumber `json:"earningsGrowth"`
				ReturnOnEquity yahooNumber `json:"returnOnEquity"`
				DebtToEquity   yahooNumber `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// GetCompanyInfo fetches the profile and fundamental fields for symbol. A
// symbol without a tradable price maps to ErrNoData.
func (c *Client) GetCompanyInfo(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	var payload quoteSummaryResponse
	url := fmt.Sprintf("%s/%s", c.quoteSummaryURL, symbol)
	err := c.retry.Do(ctx, func() error {
		c.recordAttempt("quote_summary")
		return c.http.SendAndParse(ctx, &apphttp.RequestOptions{
			Method: apphttp.MethodGet,
			URL:    url,
			Headers: map[string]string{
				"User-Agent": c.userAgent,
			},
			QueryParams: map[string][]string{
				"modules": {quoteSummaryModules},
			},
		}, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: quote summary %s: %v", domrepo.ErrUpstreamFetch, symbol, err)
	}

	if e := payload.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("%w: %s: %s", domrepo.ErrNoData, symbol, e.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domrepo.ErrNoData, symbol)
	}

	r := payload.QuoteSummary.Result[0]
	info := &models.CompanyInfo{Symbol: symbol}
	if r.Price != nil {
		info.LongName = r.Price.LongName
		info.RegularMarketPrice = r.Price.RegularMarketPrice.Raw
	}
	if info.RegularMarketPrice == nil {
		return nil, fmt.Errorf("%w: %s: no market price", domrepo.ErrNoData, symbol)
	}
	if r.SummaryProfile != nil {
		info.Sector = r.SummaryProfile.Sector
		info.Country = r.SummaryProfile.Country
		info.BusinessSummary = r.SummaryProfile.LongBusinessSummary
	}
	if r.SummaryDetail != nil {
		info.TrailingPE = r.SummaryDetail.TrailingPE.Raw
	}
	if r.FinancialData != nil {
		info.EarningsGrowth = r.FinancialData.EarningsGrowth.Raw
		info.ReturnOnEquity = r.FinancialData.ReturnOnEquity.Raw
		info.DebtToEquity = r.FinancialData.DebtToEquity.Raw
	}
	return info, nil
}

func (c *Client) recordAttempt(endpoint string) {
	if c.metrics != nil {
		c.metrics.RecordUpstreamAttempt(endpoint)
	}
}

func deref(xs []*float64, i int) float64 {
	if i >= len(xs) || xs[i] == nil {
		return math.NaN()
	}
	return *xs[i]
}
