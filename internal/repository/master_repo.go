package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

func (r *MasterRepository) Create(ctx context.Context, m *entity.Master) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MasterRepository) Update(ctx context.Context, m *entity.Master) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MasterRepository) GetByID(ctx context.Context, id string) (*entity.Master, error) {
	var m entity.Master
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	return &m, err
}

// CodeExists reports whether a non-deleted master carries the code,
// excluding the given id (pass "" on create).
func (r *MasterRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Master{}).
		Where("code = ? AND deleted_at IS NULL", code)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountChildren counts non-deleted children of a master.
func (r *MasterRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Master{}).
		Where("parent_id = ? AND deleted_at IS NULL", parentID).
		Count(&count).Error
	return count, err
}

// NextSequence returns max sibling sequence + 1 under the given parent.
func (r *MasterRepository) NextSequence(ctx context.Context, parentID *string) (int, error) {
	var result struct{ Max int }
	query := r.db.WithContext(ctx).Model(&entity.Master{}).
		Select("COALESCE(MAX(sequence), 0) AS max").
		Where("deleted_at IS NULL")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Scan(&result).Error
	return result.Max + 1, err
}

type MasterListParams struct {
	ParentID string
	RootOnly bool
	Keyword  string
	Page     int
	Size     int
}

func (r *MasterRepository) List(ctx context.Context, params MasterListParams) ([]entity.Master, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Master{}).Where("deleted_at IS NULL")
	if params.RootOnly {
		query = query.Where("parent_id IS NULL")
	} else if params.ParentID != "" {
		query = query.Where("parent_id = ?", params.ParentID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var masters []entity.Master
	err := query.Order("sequence ASC, created_at ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&masters).Error
	return masters, total, err
}

// Tree loads root masters with their non-deleted children.
func (r *MasterRepository) Tree(ctx context.Context) ([]entity.Master, error) {
	var roots []entity.Master
	err := r.db.WithContext(ctx).
		Preload("Children", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("parent_id IS NULL AND deleted_at IS NULL").
		Order("sequence ASC").
		Find(&roots).Error
	return roots, err
}
