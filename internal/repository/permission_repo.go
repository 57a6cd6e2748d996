package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, p *entity.Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PermissionRepository) Update(ctx context.Context, p *entity.Permission) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PermissionRepository) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	var p entity.Permission
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).First(&p).Error
	return &p, err
}

// RoleNameExists reports whether a non-deleted role carries the name,
// excluding the given id (pass "" on create).
func (r *PermissionRepository) RoleNameExists(ctx context.Context, roleName, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Permission{}).
		Where("role_name = ? AND deleted_at IS NULL", roleName)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *PermissionRepository) List(ctx context.Context, page, size int) ([]entity.Permission, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Permission{}).Where("deleted_at IS NULL")
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var perms []entity.Permission
	err := query.Order("created_at ASC").
		Offset((page - 1) * size).Limit(size).Find(&perms).Error
	return perms, total, err
}

func (r *PermissionRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entity.Permission{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", gorm.Expr("NOW()")).Error
}
