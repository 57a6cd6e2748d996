package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MasterService struct {
	masterRepo *repository.MasterRepository
}

func NewMasterService(masterRepo *repository.MasterRepository) *MasterService {
	return &MasterService{masterRepo: masterRepo}
}

type CreateMasterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Code     string  `json:"code" binding:"required"`
	ParentID *string `json:"parent_id"`
	IsActive *bool   `json:"is_active"`
}

// Create inserts a master row. Children get sequence = max sibling sequence
// + 1 and snapshot parent_code/group_name from the parent at creation time;
// a later parent rename does not touch them.
func (s *MasterService) Create(ctx context.Context, req CreateMasterRequest) (*entity.Master, error) {
	exists, err := s.masterRepo.CodeExists(ctx, req.Code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("master code %q already exists: %w", req.Code, ErrConflict)
	}

	master := &entity.Master{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
		IsActive: true,
	}
	if req.IsActive != nil {
		master.IsActive = *req.IsActive
	}

	if req.ParentID != nil {
		parent, err := s.masterRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent master %s: %w", *req.ParentID, ErrNotFound)
			}
			return nil, err
		}
		master.ParentCode = parent.Code
		master.GroupName = parent.GroupName
		if master.GroupName == "" {
			master.GroupName = parent.Name
		}
	} else {
		master.GroupName = req.Name
	}

	seq, err := s.masterRepo.NextSequence(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}
	master.Sequence = seq

	if err := s.masterRepo.Create(ctx, master); err != nil {
		return nil, fmt.Errorf("failed to create master: %w", err)
	}
	return master, nil
}

type UpdateMasterRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Sequence *int   `json:"sequence"`
	IsActive *bool  `json:"is_active"`
}

func (s *MasterService) Update(ctx context.Context, id string, req UpdateMasterRequest) (*entity.Master, error) {
	master, err := s.masterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("master %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.masterRepo.CodeExists(ctx, req.Code, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("master code %q already exists: %w", req.Code, ErrConflict)
	}

	master.Name = req.Name
	master.Code = req.Code
	if req.Sequence != nil {
		master.Sequence = *req.Sequence
	}
	if req.IsActive != nil {
		master.IsActive = *req.IsActive
	}
	if err := s.masterRepo.Update(ctx, master); err != nil {
		return nil, fmt.Errorf("failed to update master: %w", err)
	}
	return master, nil
}

// Delete soft-deletes a master. Deletion is blocked while any non-deleted
// child references this row as parent.
func (s *MasterService) Delete(ctx context.Context, id string) error {
	master, err := s.masterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("master %s: %w", id, ErrNotFound)
		}
		return err
	}

	children, err := s.masterRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("master %q has sub-master records: %w", master.Name, ErrConflict)
	}

	now := time.Now()
	master.DeletedAt = &now
	return s.masterRepo.Update(ctx, master)
}

func (s *MasterService) GetByID(ctx context.Context, id string) (*entity.Master, error) {
	master, err := s.masterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("master %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return master, nil
}

func (s *MasterService) List(ctx context.Context, params repository.MasterListParams) ([]entity.Master, int64, error) {
	return s.masterRepo.List(ctx, params)
}

func (s *MasterService) Tree(ctx context.Context) ([]entity.Master, error) {
	return s.masterRepo.Tree(ctx)
}
