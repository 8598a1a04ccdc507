package symbols

import (
	"context"
	"fmt"
	"strings"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	apphttp "ChartPulse/pkg/http"
)

// DefaultDirectoryURL is the exchange's official pipe-delimited symbol
// directory.
const DefaultDirectoryURL = "https://www.nasdaqtrader.com/dynamic/SymDir/nasdaqtraded.txt"

// Fetcher downloads and parses the tradable-symbol directory.
type Fetcher struct {
	http *apphttp.Client
	url  string
}

func NewFetcher(httpClient *apphttp.Client, url string) *Fetcher {
	if url == "" {
		url = DefaultDirectoryURL
	}
	return &Fetcher{http: httpClient, url: url}
}

// Fetch downloads the directory and returns listed common-stock entries,
// excluding ETFs and test issues.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.SymbolEntry, error) {
	var body []byte
	err := f.http.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    f.url,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: symbol directory: %v", domrepo.ErrUpstreamFetch, err)
	}
	return ParseDirectory(string(body)), nil
}

// ParseDirectory parses the pipe-delimited directory body. The last line is a
// "File Creation Time" trailer and is skipped, as are ETFs and test issues.
func ParseDirectory(body string) []models.SymbolEntry {
	lines := strings.Split(body, "\n")
	out := make([]models.SymbolEntry, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 || line == "" || strings.HasPrefix(line, "File Creation Time") {
			continue
		}
		fields := strings.Split(line, "|")
		// Nasdaq Traded|Symbol|Security Name|Listing Exchange|Market Category|ETF|...|Test Issue|...
		if len(fields) < 8 {
			continue
		}
		traded, symbol, name, etf, testIssue := fields[0], fields[1], fields[2], fields[5], fields[7]
		if traded != "Y" || etf == "Y" || testIssue == "Y" || symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, models.SymbolEntry{
			Symbol: symbol,
			Name:   cleanSecurityName(name),
			Market: marketForExchange(fields[3]),
		})
	}
	return out
}

// cleanSecurityName strips the share-class suffix the directory appends after
// " - " so names read like company names.
func cleanSecurityName(name string) string {
	if idx := strings.Index(name, " - "); idx > 0 {
		return name[:idx]
	}
	return name
}

func marketForExchange(code string) string {
	switch code {
	case "Q":
		return "NASDAQ"
	case "N":
		return "NYSE"
	case "A":
		return "AMEX"
	default:
		return "OTHER"
	}
}
