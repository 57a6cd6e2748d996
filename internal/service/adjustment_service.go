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

type CreateAdjustmentRequest struct {
	JobID          string  `json:"job_id" binding:"required"`
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialNameID string  `json:"material_name_id" binding:"required"`
	UnitID         string  `json:"unit_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"gte=0"`
	Notes          string  `json:"notes"`
}

type DecideAdjustmentRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

// WastageService manages wastage records. Approval credits the wasted
// quantity back into the ledger.
type WastageService struct {
	wastageRepo     *repository.WastageRepository
	activityLogRepo *repository.ActivityLogRepository
	db              *gorm.DB
}

func NewWastageService(wastageRepo *repository.WastageRepository, activityLogRepo *repository.ActivityLogRepository, db *gorm.DB) *WastageService {
	return &WastageService{wastageRepo: wastageRepo, activityLogRepo: activityLogRepo, db: db}
}

func (s *WastageService) Create(ctx context.Context, req CreateAdjustmentRequest, userID string) (*entity.WastageMaterial, error) {
	if err := requireJob(ctx, s.db, req.JobID); err != nil {
		return nil, err
	}
	record := &entity.WastageMaterial{
		ID:             uuid.New().String(),
		JobID:          req.JobID,
		MaterialTypeID: req.MaterialTypeID,
		MaterialNameID: req.MaterialNameID,
		UnitID:         req.UnitID,
		Quantity:       req.Quantity,
		Weight:         req.Weight,
		Notes:          req.Notes,
		Status:         entity.AdjustmentStatusPending,
		CreatedBy:      userID,
	}
	if err := s.wastageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create wastage material: %w", err)
	}
	return record, nil
}

// Decide moves a Pending record to Approved or Rejected; both are terminal.
// The transition is a single conditional update so a concurrent second
// approval affects zero rows and aborts before any ledger write.
func (s *WastageService) Decide(ctx context.Context, id string, req DecideAdjustmentRequest, userID string) (*entity.WastageMaterial, error) {
	var record entity.WastageMaterial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.WastageMaterial{}).
			Where("id = ? AND status = ? AND deleted_at IS NULL", id, entity.AdjustmentStatusPending).
			Update("status", req.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return adjustmentTransitionError(tx, &entity.WastageMaterial{}, id)
		}

		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if req.Status != entity.AdjustmentStatusApproved {
			return nil
		}

		var job entity.Job
		if err := tx.Where("id = ?", record.JobID).First(&job).Error; err != nil {
			return fmt.Errorf("job %s: %w", record.JobID, ErrNotFound)
		}
		ledger := &entity.RawMaterialTransaction{
			ID:              uuid.New().String(),
			JobID:           &record.JobID,
			MaterialTypeID:  record.MaterialTypeID,
			MaterialNameID:  record.MaterialNameID,
			UnitID:          record.UnitID,
			TransactionType: entity.TxTypeIn,
			Quantity:        record.Quantity,
			Weight:          record.Weight,
			ManufacturerID:  job.ManufacturerID,
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

	action := "reject"
	if req.Status == entity.AdjustmentStatusApproved {
		action = "approve"
	}
	s.activityLogRepo.LogActivity(ctx, "wastage_material", record.ID, "", action,
		entity.AdjustmentStatusPending, req.Status, record.Notes, userID)
	return &record, nil
}

func (s *WastageService) List(ctx context.Context, params repository.AdjustmentListParams) ([]entity.WastageMaterial, int64, error) {
	return s.wastageRepo.List(ctx, params)
}

// ReturnService manages return-material records. Approval credits the
// returned quantity back into the ledger.
type ReturnService struct {
	returnRepo      *repository.ReturnRepository
	activityLogRepo *repository.ActivityLogRepository
	db              *gorm.DB
}

func NewReturnService(returnRepo *repository.ReturnRepository, activityLogRepo *repository.ActivityLogRepository, db *gorm.DB) *ReturnService {
	return &ReturnService{returnRepo: returnRepo, activityLogRepo: activityLogRepo, db: db}
}

func (s *ReturnService) Create(ctx context.Context, req CreateAdjustmentRequest, userID string) (*entity.ReturnMaterial, error) {
	if err := requireJob(ctx, s.db, req.JobID); err != nil {
		return nil, err
	}
	record := &entity.ReturnMaterial{
		ID:             uuid.New().String(),
		JobID:          req.JobID,
		MaterialTypeID: req.MaterialTypeID,
		MaterialNameID: req.MaterialNameID,
		UnitID:         req.UnitID,
		Quantity:       req.Quantity,
		Weight:         req.Weight,
		Notes:          req.Notes,
		Status:         entity.AdjustmentStatusPending,
		CreatedBy:      userID,
	}
	if err := s.returnRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create return material: %w", err)
	}
	return record, nil
}

func (s *ReturnService) Decide(ctx context.Context, id string, req DecideAdjustmentRequest, userID string) (*entity.ReturnMaterial, error) {
	var record entity.ReturnMaterial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.ReturnMaterial{}).
			Where("id = ? AND status = ? AND deleted_at IS NULL", id, entity.AdjustmentStatusPending).
			Update("status", req.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return adjustmentTransitionError(tx, &entity.ReturnMaterial{}, id)
		}

		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if req.Status != entity.AdjustmentStatusApproved {
			return nil
		}

		var job entity.Job
		if err := tx.Where("id = ?", record.JobID).First(&job).Error; err != nil {
			return fmt.Errorf("job %s: %w", record.JobID, ErrNotFound)
		}
		ledger := &entity.RawMaterialTransaction{
			ID:              uuid.New().String(),
			JobID:           &record.JobID,
			MaterialTypeID:  record.MaterialTypeID,
			MaterialNameID:  record.MaterialNameID,
			UnitID:          record.UnitID,
			TransactionType: entity.TxTypeIn,
			Quantity:        record.Quantity,
			Weight:          record.Weight,
			ManufacturerID:  job.ManufacturerID,
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

	action := "reject"
	if req.Status == entity.AdjustmentStatusApproved {
		action = "approve"
	}
	s.activityLogRepo.LogActivity(ctx, "return_material", record.ID, "", action,
		entity.AdjustmentStatusPending, req.Status, record.Notes, userID)
	return &record, nil
}

func (s *ReturnService) List(ctx context.Context, params repository.AdjustmentListParams) ([]entity.ReturnMaterial, int64, error) {
	return s.returnRepo.List(ctx, params)
}

// adjustmentTransitionError distinguishes a missing record from one already
// decided when the conditional status update matched nothing.
func adjustmentTransitionError(tx *gorm.DB, model interface{}, id string) error {
	var count int64
	if err := tx.Model(model).Where("id = ? AND deleted_at IS NULL", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check record %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	return fmt.Errorf("record %s is already decided: %w", id, ErrConflict)
}

func requireJob(ctx context.Context, db *gorm.DB, jobID string) error {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Job{}).
		Where("id = ? AND deleted_at IS NULL", jobID).Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("job %s: %w", jobID, ErrNotFound)
		}
		return err
	}
	if count == 0 {
		return fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	return nil
}
