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

type RawMaterialService struct {
	rawMaterialRepo *repository.RawMaterialRepository
	db              *gorm.DB
}

func NewRawMaterialService(rawMaterialRepo *repository.RawMaterialRepository, db *gorm.DB) *RawMaterialService {
	return &RawMaterialService{rawMaterialRepo: rawMaterialRepo, db: db}
}

type CreateRawMaterialRequest struct {
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialNameID string  `json:"material_name_id" binding:"required"`
	UnitID         string  `json:"unit_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"gte=0"`
	Cost           float64 `json:"cost" binding:"gte=0"`
	VendorID       *string `json:"vendor_id"`
}

// Create inserts the raw material and its inbound IN ledger row in one
// transaction.
func (s *RawMaterialService) Create(ctx context.Context, req CreateRawMaterialRequest, userID string) (*entity.RawMaterial, error) {
	material := &entity.RawMaterial{
		ID:             uuid.New().String(),
		MaterialTypeID: req.MaterialTypeID,
		MaterialNameID: req.MaterialNameID,
		UnitID:         req.UnitID,
		Quantity:       req.Quantity,
		Weight:         req.Weight,
		Cost:           req.Cost,
		VendorID:       req.VendorID,
		CreatedBy:      userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(material).Error; err != nil {
			return fmt.Errorf("failed to create raw material: %w", err)
		}
		ledger := &entity.RawMaterialTransaction{
			ID:              uuid.New().String(),
			RawMaterialID:   &material.ID,
			MaterialTypeID:  req.MaterialTypeID,
			MaterialNameID:  req.MaterialNameID,
			UnitID:          req.UnitID,
			TransactionType: entity.TxTypeIn,
			Quantity:        req.Quantity,
			Weight:          req.Weight,
			VendorID:        req.VendorID,
			CreatedBy:       userID,
		}
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("failed to create ledger transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

type UpdateRawMaterialRequest struct {
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialNameID string  `json:"material_name_id" binding:"required"`
	UnitID         string  `json:"unit_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"gte=0"`
	Cost           float64 `json:"cost" binding:"gte=0"`
	VendorID       *string `json:"vendor_id"`
}

// Update edits the raw material and overwrites quantity/weight on its
// linked ledger rows. This is the one place that rewrites ledger rows
// instead of appending.
func (s *RawMaterialService) Update(ctx context.Context, id string, req UpdateRawMaterialRequest, userID string) (*entity.RawMaterial, error) {
	var material entity.RawMaterial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&material).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("raw material %s: %w", id, ErrNotFound)
			}
			return err
		}
		material.MaterialTypeID = req.MaterialTypeID
		material.MaterialNameID = req.MaterialNameID
		material.UnitID = req.UnitID
		material.Quantity = req.Quantity
		material.Weight = req.Weight
		material.Cost = req.Cost
		material.VendorID = req.VendorID
		if err := tx.Save(&material).Error; err != nil {
			return fmt.Errorf("failed to update raw material: %w", err)
		}
		return tx.Model(&entity.RawMaterialTransaction{}).
			Where("raw_material_id = ? AND deleted_at IS NULL", id).
			Updates(map[string]interface{}{
				"material_type_id": req.MaterialTypeID,
				"material_name_id": req.MaterialNameID,
				"unit_id":          req.UnitID,
				"quantity":         req.Quantity,
				"weight":           req.Weight,
				"vendor_id":        req.VendorID,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *RawMaterialService) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	material, err := s.rawMaterialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return material, nil
}

func (s *RawMaterialService) List(ctx context.Context, params repository.RawMaterialListParams) ([]entity.RawMaterial, int64, error) {
	return s.rawMaterialRepo.List(ctx, params)
}

func (s *RawMaterialService) Delete(ctx context.Context, id string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&entity.RawMaterial{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("raw material %s: %w", id, ErrNotFound)
	}
	return nil
}
