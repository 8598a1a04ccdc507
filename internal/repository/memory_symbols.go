package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ChartPulse/internal/domain/models"
)

// MemorySymbolStore is the in-process SymbolStore used when no ClickHouse
// backend is configured. Search semantics match the ClickHouse store: symbol
// prefix or name substring, case-insensitive.
type MemorySymbolStore struct {
	mu      sync.RWMutex
	markets map[string][]models.SymbolEntry
}

func NewMemorySymbolStore() *MemorySymbolStore {
	return &MemorySymbolStore{markets: make(map[string][]models.SymbolEntry)}
}

func (s *MemorySymbolStore) Init(context.Context) error { return nil }

func (s *MemorySymbolStore) Replace(_ context.Context, market string, entries []models.SymbolEntry) error {
	cp := make([]models.SymbolEntry, len(entries))
	copy(cp, entries)
	for i := range cp {
		cp[i].Market = market
	}
	s.mu.Lock()
	s.markets[market] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemorySymbolStore) Search(_ context.Context, query string, limit int) ([]models.SymbolEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToUpper(query)

	s.mu.RLock()
	var out []models.SymbolEntry
	for _, entries := range s.markets {
		for _, e := range entries {
			if strings.HasPrefix(strings.ToUpper(e.Symbol), q) ||
				strings.Contains(strings.ToUpper(e.Name), q) {
				out = append(out, e)
			}
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemorySymbolStore) Close() error { return nil }
