package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type TrackerRepository struct {
	db *gorm.DB
}

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

func (r *TrackerRepository) Create(ctx context.Context, tracker *entity.ProductionTracker) error {
	return r.db.WithContext(ctx).Create(tracker).Error
}

func (r *TrackerRepository) FindByJobID(ctx context.Context, jobID string) ([]entity.ProductionTracker, error) {
	var trackers []entity.ProductionTracker
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND deleted_at IS NULL", jobID).
		Order("created_at ASC").
		Find(&trackers).Error
	return trackers, err
}

type TrackerListParams struct {
	JobID  string
	Status string
	Page   int
	Size   int
}

func (r *TrackerRepository) List(ctx context.Context, params TrackerListParams) ([]entity.ProductionTracker, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ProductionTracker{}).Where("deleted_at IS NULL")
	if params.JobID != "" {
		query = query.Where("job_id = ?", params.JobID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var trackers []entity.ProductionTracker
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&trackers).Error
	return trackers, total, err
}
