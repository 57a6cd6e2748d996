package repository

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).
		Preload("Materials", "deleted_at IS NULL").
		Preload("Manufacturer").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&job).Error
	return &job, err
}

type JobListParams struct {
	Status         string
	Priority       string
	ManufacturerID string
	Keyword        string
	Page           int
	Size           int
}

func (r *JobRepository) List(ctx context.Context, params JobListParams) ([]entity.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Job{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}
	if params.ManufacturerID != "" {
		query = query.Where("manufacturer_id = ?", params.ManufacturerID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("job_code ILIKE ? OR product_name ILIKE ? OR customer_name ILIKE ?", kw, kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var jobs []entity.Job
	err := query.Preload("Materials", "deleted_at IS NULL").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) GetMaterialsByJobID(ctx context.Context, jobID string) ([]entity.JobMaterial, error) {
	var materials []entity.JobMaterial
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND deleted_at IS NULL", jobID).
		Find(&materials).Error
	return materials, err
}
