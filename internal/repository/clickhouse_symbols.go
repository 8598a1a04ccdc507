package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ChartPulse/internal/domain/models"
	pkgch "ChartPulse/pkg/clickhouse"
	applogger "ChartPulse/pkg/logger"
)

const symbolsTable = "chartpulse.symbols"

var symbolSchema = []string{
	"CREATE DATABASE IF NOT EXISTS chartpulse",
	`CREATE TABLE IF NOT EXISTS chartpulse.symbols (
        symbol String,
        name String,
        market String,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at) ORDER BY (market, symbol)`,
}

// CHSymbolStore implements SymbolStore backed by ClickHouse.
type CHSymbolStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

func NewCHSymbolStore(ch *pkgch.Client) *CHSymbolStore {
	return &CHSymbolStore{ch: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSymbolStore) SetLogger(l *applogger.Logger) { s.l = l }

// Init ensures the database and symbol table exist.
func (s *CHSymbolStore) Init(ctx context.Context) error {
	return s.ch.InitSchema(ctx, symbolSchema)
}

// Replace swaps the reference list for a market with a freshly scraped one.
func (s *CHSymbolStore) Replace(ctx context.Context, market string, entries []models.SymbolEntry) error {
	start := time.Now()
	if _, err := s.db.ExecContext(ctx,
		fmt.Sprintf("ALTER TABLE %s DELETE WHERE market = ?", symbolsTable), market); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse symbols delete error",
				applogger.String("market", market),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("delete symbols: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s (symbol, name, market) VALUES (?, ?, ?)", symbolsTable))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Symbol, e.Name, market); err != nil {
			_ = tx.Rollback()
			if s.l != nil {
				s.l.Error("clickhouse symbols insert error",
					applogger.String("market", market),
					applogger.String("symbol", e.Symbol),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert symbol: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse symbols replaced",
			applogger.String("market", market),
			applogger.Int("rows", len(entries)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Search matches symbols and names by case-insensitive prefix and substring.
func (s *CHSymbolStore) Search(ctx context.Context, query string, limit int) ([]models.SymbolEntry, error) {
	start := time.Now()
	if limit <= 0 {
		limit = 20
	}
	const q = `
        SELECT symbol, name, market
        FROM chartpulse.symbols FINAL
        WHERE positionCaseInsensitive(symbol, ?) = 1
           OR positionCaseInsensitive(name, ?) > 0
        ORDER BY symbol ASC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, query, query, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse symbols search error",
				applogger.String("query", query),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("search symbols: %w", err)
	}
	defer rows.Close()

	out := make([]models.SymbolEntry, 0, limit)
	for rows.Next() {
		var e models.SymbolEntry
		if err := rows.Scan(&e.Symbol, &e.Name, &e.Market); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse symbols search ok",
			applogger.String("query", query),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// Close releases the underlying connection pool.
func (s *CHSymbolStore) Close() error { return s.ch.Close() }
