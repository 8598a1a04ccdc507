package usecase

import (
	"context"
	"strings"
	"time"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	"ChartPulse/internal/services/fundamentals"
)

// InfoUseCase fetches a company profile and grades its fundamentals.
type InfoUseCase struct {
	provider domrepo.BarProvider
	metrics  domrepo.Metrics
}

func NewInfoUseCase(provider domrepo.BarProvider, metrics domrepo.Metrics) *InfoUseCase {
	return &InfoUseCase{provider: provider, metrics: metrics}
}

func (uc *InfoUseCase) GetInfo(ctx context.Context, req *models.InfoRequest) (*models.CompanyReport, error) {
	start := time.Now()
	symbol := strings.ToUpper(strings.TrimSpace(req.Ticker))

	info, err := uc.provider.GetCompanyInfo(ctx, symbol)
	if err != nil {
		uc.metrics.RecordError(errorKind(err))
		return nil, translateError(err)
	}
	uc.metrics.RecordLatency("info", time.Since(start).Seconds())

	return &models.CompanyReport{
		Symbol:          symbol,
		LongName:        info.LongName,
		Sector:          info.Sector,
		Country:         info.Country,
		BusinessSummary: info.BusinessSummary,
		Stats:           fundamentals.Score(info),
		RawStats: models.RawFundamentals{
			PE:             info.TrailingPE,
			EarningsGrowth: info.EarningsGrowth,
			ROE:            info.ReturnOnEquity,
			DebtToEquity:   info.DebtToEquity,
		},
	}, nil
}
