package models

// CompanyInfo is the provider's profile/fundamental payload mapped onto an
// explicit optional-field struct. Every pointer field may be absent in the
// upstream response; it is validated once at the ingestion boundary, not
// re-checked at each use site.
type CompanyInfo struct {
	Symbol             string
	LongName           *string
	Sector             *string
	Country            *string
	BusinessSummary    *string
	RegularMarketPrice *float64
	TrailingPE         *float64
	EarningsGrowth     *float64
	ReturnOnEquity     *float64
	DebtToEquity       *float64
}

// FundamentalScores are the four category scores in [0,100].
type FundamentalScores struct {
	Value         int `json:"value"`
	Growth        int `json:"growth"`
	Profitability int `json:"profitability"`
	Stability     int `json:"stability"`
}

// FundamentalStats is the scored summary with letter grade.
type FundamentalStats struct {
	Scores     FundamentalScores `json:"scores"`
	TotalScore float64           `json:"totalScore"`
	Grade      string            `json:"grade"`
}

// RawFundamentals echoes the inputs behind the scores, nulls preserved.
type RawFundamentals struct {
	PE             *float64 `json:"pe"`
	EarningsGrowth *float64 `json:"earningsGrowth"`
	ROE            *float64 `json:"roe"`
	DebtToEquity   *float64 `json:"debtToEquity"`
}

// CompanyReport is the /api/stock/info response body.
type CompanyReport struct {
	Symbol          string           `json:"symbol"`
	LongName        *string          `json:"longName"`
	Sector          *string          `json:"sector"`
	Country         *string          `json:"country"`
	BusinessSummary *string          `json:"longBusinessSummary"`
	Stats           FundamentalStats `json:"stats"`
	RawStats        RawFundamentals  `json:"rawStats"`
}
