package service

import (
	"context"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/repository"
)

type ActivityLogService struct {
	activityLogRepo *repository.ActivityLogRepository
}

func NewActivityLogService(activityLogRepo *repository.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{activityLogRepo: activityLogRepo}
}

func (s *ActivityLogService) FindByEntity(ctx context.Context, entityType, entityID string, page, size int) ([]entity.ActivityLog, int64, error) {
	return s.activityLogRepo.FindByEntity(ctx, entityType, entityID, page, size)
}
