package repository

import (
	"context"

	"ChartPulse/internal/domain/models"
)

// BarProvider supplies historical bar sequences and company profiles. Bars
// come back ordered by strictly increasing timestamp; retries are the
// implementation's concern.
type BarProvider interface {
	GetBars(ctx context.Context, symbol string, r Range, iv Interval) ([]models.Bar, error)
	GetCompanyInfo(ctx context.Context, symbol string) (*models.CompanyInfo, error)
}

// SymbolStore persists and searches the tradable-symbol reference lists
// produced by the batch updater.
type SymbolStore interface {
	Init(ctx context.Context) error
	Replace(ctx context.Context, market string, entries []models.SymbolEntry) error
	Search(ctx context.Context, query string, limit int) ([]models.SymbolEntry, error)
	Close() error
}

// ReportPublisher emits report-generated events to the event stream.
type ReportPublisher interface {
	PublishReport(ctx context.Context, ev models.ReportEvent) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordCacheHit(endpoint string, hit bool)
	RecordUpstreamAttempt(host string)
}
