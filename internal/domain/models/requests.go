package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency
// and reuse.

type StockRequest struct {
	Ticker    string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Range     string `query:"range" json:"range" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
	Interval  string `query:"interval" json:"interval" default:"1d" validate:"oneof=1h 1d 1wk 1mo"`
	Benchmark string `query:"benchmark" json:"benchmark" validate:"omitempty,min=1,max=12"`
}

type InfoRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
}

type SymbolsRequest struct {
	Q     string `query:"q" json:"q" validate:"required,min=1,max=32"`
	Limit int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}
