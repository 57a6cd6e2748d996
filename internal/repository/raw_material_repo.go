package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type RawMaterialRepository struct {
	db *gorm.DB
}

func NewRawMaterialRepository(db *gorm.DB) *RawMaterialRepository {
	return &RawMaterialRepository{db: db}
}

func (r *RawMaterialRepository) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	var rm entity.RawMaterial
	err := r.db.WithContext(ctx).Preload("Vendor").
		Where("id = ? AND deleted_at IS NULL", id).First(&rm).Error
	return &rm, err
}

type RawMaterialListParams struct {
	MaterialTypeID string
	MaterialNameID string
	VendorID       string
	Page           int
	Size           int
}

func (r *RawMaterialRepository) List(ctx context.Context, params RawMaterialListParams) ([]entity.RawMaterial, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.RawMaterial{}).Where("deleted_at IS NULL")
	if params.MaterialTypeID != "" {
		query = query.Where("material_type_id = ?", params.MaterialTypeID)
	}
	if params.MaterialNameID != "" {
		query = query.Where("material_name_id = ?", params.MaterialNameID)
	}
	if params.VendorID != "" {
		query = query.Where("vendor_id = ?", params.VendorID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var materials []entity.RawMaterial
	err := query.Preload("Vendor").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&materials).Error
	return materials, total, err
}
