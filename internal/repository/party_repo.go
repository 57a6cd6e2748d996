package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type PartyListParams struct {
	Keyword string
	Page    int
	Size    int
}

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(ctx context.Context, v *entity.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VendorRepository) Update(ctx context.Context, v *entity.Vendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VendorRepository) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&v).Error
	return &v, err
}

func (r *VendorRepository) List(ctx context.Context, params PartyListParams) ([]entity.Vendor, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Vendor{}).Where("deleted_at IS NULL")
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var vendors []entity.Vendor
	err := query.Order("created_at ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&vendors).Error
	return vendors, total, err
}

func (r *VendorRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entity.Vendor{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", gorm.Expr("NOW()")).Error
}

type ManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

func (r *ManufacturerRepository) Create(ctx context.Context, m *entity.Manufacturer) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ManufacturerRepository) Update(ctx context.Context, m *entity.Manufacturer) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ManufacturerRepository) GetByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	var m entity.Manufacturer
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	return &m, err
}

func (r *ManufacturerRepository) List(ctx context.Context, params PartyListParams) ([]entity.Manufacturer, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Manufacturer{}).Where("deleted_at IS NULL")
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var manufacturers []entity.Manufacturer
	err := query.Order("created_at ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&manufacturers).Error
	return manufacturers, total, err
}

func (r *ManufacturerRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entity.Manufacturer{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", gorm.Expr("NOW()")).Error
}
