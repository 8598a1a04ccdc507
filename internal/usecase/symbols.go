package usecase

import (
	"context"
	"fmt"
	"strings"

	"ChartPulse/internal/domain/models"
	domrepo "ChartPulse/internal/domain/repository"
)

// SymbolsUseCase searches the tradable-symbol reference lists.
type SymbolsUseCase struct {
	store domrepo.SymbolStore
}

func NewSymbolsUseCase(store domrepo.SymbolStore) *SymbolsUseCase {
	return &SymbolsUseCase{store: store}
}

type SymbolsResult struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Symbols []models.SymbolEntry `json:"symbols"`
}

func (uc *SymbolsUseCase) Search(ctx context.Context, req *models.SymbolsRequest) (*SymbolsResult, error) {
	q := strings.TrimSpace(req.Q)
	if q == "" {
		return nil, translateError(fmt.Errorf("%w: empty query", domrepo.ErrInvalidParameter))
	}

	entries, err := uc.store.Search(ctx, q, req.Limit)
	if err != nil {
		return nil, translateError(err)
	}
	return &SymbolsResult{Query: q, Count: len(entries), Symbols: entries}, nil
}
