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

type JobService struct {
	jobRepo         *repository.JobRepository
	activityLogRepo *repository.ActivityLogRepository
	db              *gorm.DB
}

func NewJobService(jobRepo *repository.JobRepository, activityLogRepo *repository.ActivityLogRepository, db *gorm.DB) *JobService {
	return &JobService{jobRepo: jobRepo, activityLogRepo: activityLogRepo, db: db}
}

type JobMaterialInput struct {
	ID             string  `json:"id"`
	MaterialTypeID string  `json:"material_type_id" binding:"required"`
	MaterialNameID string  `json:"material_name_id" binding:"required"`
	UnitID         string  `json:"unit_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"gte=0"`
	MaterialCost   float64 `json:"material_cost" binding:"gte=0"`
}

type CreateJobRequest struct {
	ProductName    string             `json:"product_name" binding:"required"`
	CustomerName   string             `json:"customer_name"`
	Priority       string             `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	DueDate        string             `json:"due_date"` // YYYY-MM-DD
	CostEstimate   float64            `json:"cost_estimate" binding:"gte=0"`
	ManufacturerID *string            `json:"manufacturer_id"`
	Materials      []JobMaterialInput `json:"materials" binding:"required,min=1,dive"`
}

// Create inserts the job, its material lines and one OUT ledger row per
// line in a single transaction. Any failure leaves no partial state.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest, userID string) (*entity.Job, error) {
	if len(req.Materials) == 0 {
		return nil, fmt.Errorf("%w: at least one material is required", ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = entity.JobPriorityMedium
	}

	now := time.Now()
	job := &entity.Job{
		ID:             uuid.New().String(),
		JobCode:        fmt.Sprintf("JOB-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		ProductName:    req.ProductName,
		CustomerName:   req.CustomerName,
		Priority:       priority,
		CostEstimate:   req.CostEstimate,
		ManufacturerID: req.ManufacturerID,
		Status:         entity.JobStatusPending,
		CreatedBy:      userID,
	}
	if req.DueDate != "" {
		t, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due_date %q", ErrValidation, req.DueDate)
		}
		job.DueDate = &t
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		for _, line := range req.Materials {
			material := &entity.JobMaterial{
				ID:             uuid.New().String(),
				JobID:          job.ID,
				MaterialTypeID: line.MaterialTypeID,
				MaterialNameID: line.MaterialNameID,
				UnitID:         line.UnitID,
				Quantity:       line.Quantity,
				Weight:         line.Weight,
				MaterialCost:   line.MaterialCost,
			}
			if err := tx.Create(material).Error; err != nil {
				return fmt.Errorf("failed to create job material: %w", err)
			}
			ledger := &entity.RawMaterialTransaction{
				ID:              uuid.New().String(),
				JobID:           &job.ID,
				JobMaterialsID:  &material.ID,
				MaterialTypeID:  line.MaterialTypeID,
				MaterialNameID:  line.MaterialNameID,
				UnitID:          line.UnitID,
				TransactionType: entity.TxTypeOut,
				Quantity:        line.Quantity,
				Weight:          line.Weight,
				ManufacturerID:  job.ManufacturerID,
				CreatedBy:       userID,
			}
			if err := tx.Create(ledger).Error; err != nil {
				return fmt.Errorf("failed to create ledger transaction: %w", err)
			}
			job.Materials = append(job.Materials, *material)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activityLogRepo.LogActivity(ctx, "job", job.ID, job.JobCode, "create", "", job.Status,
		fmt.Sprintf("job created with %d materials", len(req.Materials)), userID)
	return job, nil
}

type UpdateJobRequest struct {
	ProductName    string             `json:"product_name" binding:"required"`
	CustomerName   string             `json:"customer_name"`
	Priority       string             `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	DueDate        string             `json:"due_date"`
	CostEstimate   float64            `json:"cost_estimate" binding:"gte=0"`
	ManufacturerID *string            `json:"manufacturer_id"`
	Materials      []JobMaterialInput `json:"materials" binding:"required,min=1,dive"`
}

// Update reconciles the material line list by id: lines missing from the
// payload are removed, recognized ids are updated, lines without an id are
// inserted. Every change emits an adjustment ledger row so stock keeps
// tracking actual consumption: added lines and quantity increases write
// OUT, removed lines and decreases write a compensating IN.
func (s *JobService) Update(ctx context.Context, id string, req UpdateJobRequest, userID string) (*entity.Job, error) {
	var updated *entity.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job entity.Job
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("job %s: %w", id, ErrNotFound)
			}
			return err
		}

		job.ProductName = req.ProductName
		job.CustomerName = req.CustomerName
		if req.Priority != "" {
			job.Priority = req.Priority
		}
		job.CostEstimate = req.CostEstimate
		job.ManufacturerID = req.ManufacturerID
		if req.DueDate != "" {
			t, err := time.Parse("2006-01-02", req.DueDate)
			if err != nil {
				return fmt.Errorf("%w: invalid due_date %q", ErrValidation, req.DueDate)
			}
			job.DueDate = &t
		}
		if err := tx.Save(&job).Error; err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		var existing []entity.JobMaterial
		if err := tx.Where("job_id = ? AND deleted_at IS NULL", id).Find(&existing).Error; err != nil {
			return err
		}
		existingByID := make(map[string]*entity.JobMaterial, len(existing))
		for i := range existing {
			existingByID[existing[i].ID] = &existing[i]
		}

		seen := make(map[string]bool, len(req.Materials))
		for _, line := range req.Materials {
			if line.ID == "" {
				material := &entity.JobMaterial{
					ID:             uuid.New().String(),
					JobID:          job.ID,
					MaterialTypeID: line.MaterialTypeID,
					MaterialNameID: line.MaterialNameID,
					UnitID:         line.UnitID,
					Quantity:       line.Quantity,
					Weight:         line.Weight,
					MaterialCost:   line.MaterialCost,
				}
				if err := tx.Create(material).Error; err != nil {
					return fmt.Errorf("failed to create job material: %w", err)
				}
				if err := s.writeAdjustment(tx, &job, material, entity.TxTypeOut, line.Quantity, line.Weight, userID); err != nil {
					return err
				}
				continue
			}

			current, ok := existingByID[line.ID]
			if !ok {
				return fmt.Errorf("job material %s: %w", line.ID, ErrNotFound)
			}
			seen[line.ID] = true

			qtyDelta := line.Quantity - current.Quantity
			weightDelta := line.Weight - current.Weight

			current.MaterialTypeID = line.MaterialTypeID
			current.MaterialNameID = line.MaterialNameID
			current.UnitID = line.UnitID
			current.Quantity = line.Quantity
			current.Weight = line.Weight
			current.MaterialCost = line.MaterialCost
			if err := tx.Save(current).Error; err != nil {
				return fmt.Errorf("failed to update job material: %w", err)
			}

			if err := s.writeMaterialDeltas(tx, &job, current, qtyDelta, weightDelta, userID); err != nil {
				return err
			}
		}

		for _, current := range existing {
			if seen[current.ID] {
				continue
			}
			now := time.Now()
			if err := tx.Model(&entity.JobMaterial{}).
				Where("id = ?", current.ID).
				Update("deleted_at", &now).Error; err != nil {
				return fmt.Errorf("failed to remove job material: %w", err)
			}
			line := current
			if err := s.writeAdjustment(tx, &job, &line, entity.TxTypeIn, line.Quantity, line.Weight, userID); err != nil {
				return err
			}
		}

		updated = &job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, updated.ID)
}

func (s *JobService) writeAdjustment(tx *gorm.DB, job *entity.Job, material *entity.JobMaterial, txType string, quantity, weight float64, userID string) error {
	ledger := &entity.RawMaterialTransaction{
		ID:              uuid.New().String(),
		JobID:           &job.ID,
		JobMaterialsID:  &material.ID,
		MaterialTypeID:  material.MaterialTypeID,
		MaterialNameID:  material.MaterialNameID,
		UnitID:          material.UnitID,
		TransactionType: txType,
		Quantity:        quantity,
		Weight:          weight,
		ManufacturerID:  job.ManufacturerID,
		CreatedBy:       userID,
	}
	if err := tx.Create(ledger).Error; err != nil {
		return fmt.Errorf("failed to create adjustment transaction: %w", err)
	}
	return nil
}

// writeMaterialDeltas turns an edit's quantity/weight deltas into adjustment
// rows: an increase consumes stock (OUT), a decrease gives it back (IN).
// Deltas pointing the same way share a row; opposing deltas get one row per
// dimension so neither is booked with the wrong sign.
func (s *JobService) writeMaterialDeltas(tx *gorm.DB, job *entity.Job, material *entity.JobMaterial, qtyDelta, weightDelta float64, userID string) error {
	if qtyDelta == 0 && weightDelta == 0 {
		return nil
	}
	if qtyDelta >= 0 && weightDelta >= 0 {
		return s.writeAdjustment(tx, job, material, entity.TxTypeOut, qtyDelta, weightDelta, userID)
	}
	if qtyDelta <= 0 && weightDelta <= 0 {
		return s.writeAdjustment(tx, job, material, entity.TxTypeIn, -qtyDelta, -weightDelta, userID)
	}
	if qtyDelta > 0 {
		if err := s.writeAdjustment(tx, job, material, entity.TxTypeOut, qtyDelta, 0, userID); err != nil {
			return err
		}
		return s.writeAdjustment(tx, job, material, entity.TxTypeIn, 0, -weightDelta, userID)
	}
	if err := s.writeAdjustment(tx, job, material, entity.TxTypeIn, -qtyDelta, 0, userID); err != nil {
		return err
	}
	return s.writeAdjustment(tx, job, material, entity.TxTypeOut, 0, weightDelta, userID)
}

func (s *JobService) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context, params repository.JobListParams) ([]entity.Job, int64, error) {
	return s.jobRepo.List(ctx, params)
}

// Delete soft-deletes the job and its material lines. Ledger rows stay.
func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&entity.Job{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", &now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return tx.Model(&entity.JobMaterial{}).
			Where("job_id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", &now).Error
	})
}

type UpdateJobStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=Pending 'In Progress' Completed 'On Hold' Qc Cancelled"`
	Description string `json:"description"`
}

// UpdateStatus sets Job.status. A transition to "In Progress" appends a new
// tracker row; trackers are history, not a 1:1 mirror, so repeated
// transitions create repeated rows.
func (s *JobService) UpdateStatus(ctx context.Context, id string, req UpdateJobStatusRequest, userID string) (*entity.Job, error) {
	var job entity.Job
	var fromStatus string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("job %s: %w", id, ErrNotFound)
			}
			return err
		}
		fromStatus = job.Status
		job.Status = req.Status
		if err := tx.Save(&job).Error; err != nil {
			return fmt.Errorf("failed to update job status: %w", err)
		}
		if req.Status == entity.JobStatusInProgress {
			tracker := &entity.ProductionTracker{
				ID:          uuid.New().String(),
				JobID:       job.ID,
				Status:      entity.JobStatusInProgress,
				Description: req.Description,
			}
			if err := tx.Create(tracker).Error; err != nil {
				return fmt.Errorf("failed to create production tracker: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activityLogRepo.LogActivity(ctx, "job", job.ID, job.JobCode, "status_change", fromStatus, job.Status, req.Description, userID)
	return &job, nil
}
