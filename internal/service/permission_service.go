package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermissionService struct {
	permissionRepo *repository.PermissionRepository
}

func NewPermissionService(permissionRepo *repository.PermissionRepository) *PermissionService {
	return &PermissionService{permissionRepo: permissionRepo}
}

type PermissionRequest struct {
	RoleName   string                  `json:"role_name" binding:"required"`
	Permission []entity.PermissionItem `json:"permission" binding:"required,min=1,dive"`
}

func (s *PermissionService) Create(ctx context.Context, req PermissionRequest) (*entity.Permission, error) {
	exists, err := s.permissionRepo.RoleNameExists(ctx, req.RoleName, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("role %q already exists: %w", req.RoleName, ErrConflict)
	}

	perm := &entity.Permission{
		ID:         uuid.New().String(),
		RoleName:   req.RoleName,
		Permission: req.Permission,
	}
	if err := s.permissionRepo.Create(ctx, perm); err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return perm, nil
}

func (s *PermissionService) Update(ctx context.Context, id string, req PermissionRequest) (*entity.Permission, error) {
	perm, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("permission %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.permissionRepo.RoleNameExists(ctx, req.RoleName, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("role %q already exists: %w", req.RoleName, ErrConflict)
	}

	perm.RoleName = req.RoleName
	perm.Permission = req.Permission
	if err := s.permissionRepo.Update(ctx, perm); err != nil {
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}
	return perm, nil
}

func (s *PermissionService) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	perm, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("permission %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return perm, nil
}

func (s *PermissionService) List(ctx context.Context, page, size int) ([]entity.Permission, int64, error) {
	return s.permissionRepo.List(ctx, page, size)
}

func (s *PermissionService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.permissionRepo.SoftDelete(ctx, id)
}
