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

type TrackerService struct {
	trackerRepo     *repository.TrackerRepository
	activityLogRepo *repository.ActivityLogRepository
	db              *gorm.DB
}

func NewTrackerService(trackerRepo *repository.TrackerRepository, activityLogRepo *repository.ActivityLogRepository, db *gorm.DB) *TrackerService {
	return &TrackerService{trackerRepo: trackerRepo, activityLogRepo: activityLogRepo, db: db}
}

type AdjustmentInput struct {
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialNameID string  `json:"material_name_id" binding:"required"`
	UnitID         string  `json:"unit_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"gte=0"`
	Notes          string  `json:"notes"`
}

type UpdateTrackerStatusRequest struct {
	Status           string            `json:"status" binding:"required,oneof=Pending 'In Progress' Completed 'On Hold' Qc Cancelled"`
	Description      string            `json:"description"`
	WastageMaterials []AdjustmentInput `json:"wastage_materials" binding:"omitempty,dive"`
	ReturnMaterials  []AdjustmentInput `json:"return_materials" binding:"omitempty,dive"`
}

// UpdateStatus updates every tracker row of the job (broad-match, not
// row-scoped) and keeps Job.status in sync, in one transaction. An empty
// description leaves the existing tracker descriptions in place; there is no
// way to clear one through this call. Optional wastage/return batches become
// Pending records with no ledger effect until approval.
func (s *TrackerService) UpdateStatus(ctx context.Context, jobID string, req UpdateTrackerStatusRequest, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job entity.Job
		if err := tx.Where("id = ? AND deleted_at IS NULL", jobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("job %s: %w", jobID, ErrNotFound)
			}
			return err
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if err := tx.Model(&entity.ProductionTracker{}).
			Where("job_id = ? AND deleted_at IS NULL", jobID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update production trackers: %w", err)
		}

		if err := tx.Model(&entity.Job{}).
			Where("id = ?", jobID).
			Update("status", req.Status).Error; err != nil {
			return fmt.Errorf("failed to update job status: %w", err)
		}

		for _, w := range req.WastageMaterials {
			record := &entity.WastageMaterial{
				ID:             uuid.New().String(),
				JobID:          jobID,
				MaterialTypeID: w.MaterialTypeID,
				MaterialNameID: w.MaterialNameID,
				UnitID:         w.UnitID,
				Quantity:       w.Quantity,
				Weight:         w.Weight,
				Notes:          w.Notes,
				Status:         entity.AdjustmentStatusPending,
				CreatedBy:      userID,
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to create wastage material: %w", err)
			}
		}
		for _, ret := range req.ReturnMaterials {
			record := &entity.ReturnMaterial{
				ID:             uuid.New().String(),
				JobID:          jobID,
				MaterialTypeID: ret.MaterialTypeID,
				MaterialNameID: ret.MaterialNameID,
				UnitID:         ret.UnitID,
				Quantity:       ret.Quantity,
				Weight:         ret.Weight,
				Notes:          ret.Notes,
				Status:         entity.AdjustmentStatusPending,
				CreatedBy:      userID,
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to create return material: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activityLogRepo.LogActivity(ctx, "job", jobID, "", "tracker_status_change", "", req.Status, req.Description, userID)
	return nil
}

func (s *TrackerService) List(ctx context.Context, params repository.TrackerListParams) ([]entity.ProductionTracker, int64, error) {
	return s.trackerRepo.List(ctx, params)
}

func (s *TrackerService) FindByJobID(ctx context.Context, jobID string) ([]entity.ProductionTracker, error) {
	return s.trackerRepo.FindByJobID(ctx, jobID)
}
