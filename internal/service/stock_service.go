package service

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/repository"
)

// StockService exposes the read side of the ledger: raw listings and the
// derived stock view.
type StockService struct {
	ledgerRepo *repository.LedgerRepository
}

func NewStockService(ledgerRepo *repository.LedgerRepository) *StockService {
	return &StockService{ledgerRepo: ledgerRepo}
}

func (s *StockService) StockSummary(ctx context.Context, page, size int) ([]repository.StockRow, int64, error) {
	return s.ledgerRepo.StockSummary(ctx, page, size)
}

func (s *StockService) GetStock(ctx context.Context, materialTypeID, materialNameID string) (*repository.StockRow, error) {
	return s.ledgerRepo.GetStock(ctx, materialTypeID, materialNameID)
}

func (s *StockService) Transactions(ctx context.Context, params repository.TransactionListParams) ([]entity.RawMaterialTransaction, int64, error) {
	return s.ledgerRepo.List(ctx, params)
}
