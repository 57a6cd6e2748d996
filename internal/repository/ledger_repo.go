package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Create(ctx context.Context, tx *entity.RawMaterialTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

type TransactionListParams struct {
	MaterialTypeID  string
	MaterialNameID  string
	JobID           string
	TransactionType string
	Page            int
	Size            int
}

func (r *LedgerRepository) List(ctx context.Context, params TransactionListParams) ([]entity.RawMaterialTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.RawMaterialTransaction{}).Where("deleted_at IS NULL")
	if params.MaterialTypeID != "" {
		query = query.Where("material_type_id = ?", params.MaterialTypeID)
	}
	if params.MaterialNameID != "" {
		query = query.Where("material_name_id = ?", params.MaterialNameID)
	}
	if params.JobID != "" {
		query = query.Where("job_id = ?", params.JobID)
	}
	if params.TransactionType != "" {
		query = query.Where("transaction_type = ?", params.TransactionType)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var txs []entity.RawMaterialTransaction
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&txs).Error
	return txs, total, err
}

// StockRow is one on-hand balance per (material_type, material_name),
// derived by summing signed ledger quantities.
type StockRow struct {
	MaterialTypeID string  `json:"material_type_id"`
	MaterialNameID string  `json:"material_name_id"`
	TotalQuantity  float64 `json:"total_quantity"`
	TotalWeight    float64 `json:"total_weight"`
}

// StockSummary aggregates the ledger on read. There is no persisted running
// balance; correctness depends on ledger completeness.
func (r *LedgerRepository) StockSummary(ctx context.Context, page, size int) ([]StockRow, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}

	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT 1 FROM raw_material_transactions
			WHERE deleted_at IS NULL
			GROUP BY material_type_id, material_name_id
		) grouped
	`).Scan(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []StockRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT material_type_id, material_name_id,
			COALESCE(SUM(CASE WHEN transaction_type = 'IN' THEN quantity ELSE -quantity END), 0) AS total_quantity,
			COALESCE(SUM(CASE WHEN transaction_type = 'IN' THEN weight ELSE -weight END), 0) AS total_weight
		FROM raw_material_transactions
		WHERE deleted_at IS NULL
		GROUP BY material_type_id, material_name_id
		ORDER BY material_type_id, material_name_id
		LIMIT ? OFFSET ?
	`, size, (page-1)*size).Scan(&rows).Error
	return rows, total, err
}

// GetStock returns the on-hand balance for one material.
func (r *LedgerRepository) GetStock(ctx context.Context, materialTypeID, materialNameID string) (*StockRow, error) {
	row := StockRow{MaterialTypeID: materialTypeID, MaterialNameID: materialNameID}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'IN' THEN quantity ELSE -quantity END), 0) AS total_quantity,
			COALESCE(SUM(CASE WHEN transaction_type = 'IN' THEN weight ELSE -weight END), 0) AS total_weight
		FROM raw_material_transactions
		WHERE material_type_id = ? AND material_name_id = ? AND deleted_at IS NULL
	`, materialTypeID, materialNameID).Scan(&row).Error
	return &row, err
}

// DB exposes the underlying handle for transactional service flows.
func (r *LedgerRepository) DB() *gorm.DB {
	return r.db
}
