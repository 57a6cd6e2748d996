package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type WastageRepository struct {
	db *gorm.DB
}

func NewWastageRepository(db *gorm.DB) *WastageRepository {
	return &WastageRepository{db: db}
}

func (r *WastageRepository) Create(ctx context.Context, w *entity.WastageMaterial) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WastageRepository) GetByID(ctx context.Context, id string) (*entity.WastageMaterial, error) {
	var w entity.WastageMaterial
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&w).Error
	return &w, err
}

type AdjustmentListParams struct {
	JobID  string
	Status string
	Page   int
	Size   int
}

func (r *WastageRepository) List(ctx context.Context, params AdjustmentListParams) ([]entity.WastageMaterial, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.WastageMaterial{}).Where("deleted_at IS NULL")
	if params.JobID != "" {
		query = query.Where("job_id = ?", params.JobID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var items []entity.WastageMaterial
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&items).Error
	return items, total, err
}

type ReturnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) *ReturnRepository {
	return &ReturnRepository{db: db}
}

func (r *ReturnRepository) Create(ctx context.Context, ret *entity.ReturnMaterial) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *ReturnRepository) GetByID(ctx context.Context, id string) (*entity.ReturnMaterial, error) {
	var ret entity.ReturnMaterial
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&ret).Error
	return &ret, err
}

func (r *ReturnRepository) List(ctx context.Context, params AdjustmentListParams) ([]entity.ReturnMaterial, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ReturnMaterial{}).Where("deleted_at IS NULL")
	if params.JobID != "" {
		query = query.Where("job_id = ?", params.JobID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var items []entity.ReturnMaterial
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&items).Error
	return items, total, err
}
