package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
	"ChartPulse/internal/services/analysis"
	xhttp "ChartPulse/pkg/http"
	applogger "ChartPulse/pkg/logger"
)

// ReportUseCase runs the analysis pipeline for one symbol and publishes the
// report-generated event when a publisher is wired.
type ReportUseCase struct {
	assembler *analysis.Assembler
	publisher domrepo.ReportPublisher
	metrics   domrepo.Metrics
	log       *applogger.Logger
}

func NewReportUseCase(assembler *analysis.Assembler, publisher domrepo.ReportPublisher, metrics domrepo.Metrics, log *applogger.Logger) *ReportUseCase {
	return &ReportUseCase{assembler: assembler, publisher: publisher, metrics: metrics, log: log}
}

func (uc *ReportUseCase) GetReport(ctx context.Context, req *models.StockRequest) (*models.StockReport, error) {
	start := time.Now()
	symbol := strings.ToUpper(strings.TrimSpace(req.Ticker))

	report, err := uc.assembler.BuildReport(ctx, symbol,
		domrepo.Range(req.Range), domrepo.Interval(req.Interval), strings.ToUpper(req.Benchmark))
	if err != nil {
		uc.metrics.RecordError(errorKind(err))
		return nil, translateError(err)
	}
	uc.metrics.RecordLatency("report", time.Since(start).Seconds())

	if uc.publisher != nil {
		ev := models.ReportEvent{
			Symbol:      report.Symbol,
			Range:       report.Range,
			Interval:    report.Interval,
			GeneratedAt: time.Now().Unix(),
		}
		if report.MultiTimeframe != nil {
			ev.Consensus = report.MultiTimeframe.Consensus
		}
		if perr := uc.publisher.PublishReport(ctx, ev); perr != nil {
			uc.log.Warn("report event publish failed", applogger.Error(perr))
		}
	}
	return report, nil
}

// translateError maps domain error kinds onto transport-level app errors.
func translateError(err error) error {
	switch {
	case errors.Is(err, domrepo.ErrInvalidParameter):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, domrepo.ErrNoData):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, domrepo.ErrUpstreamFetch):
		return xhttp.BadGatewayError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("report generation failed").WithError(err)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domrepo.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, domrepo.ErrNoData):
		return "no_data"
	case errors.Is(err, domrepo.ErrUpstreamFetch):
		return "upstream_fetch"
	default:
		return "internal"
	}
}
