package handler

import (
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type ActivityLogHandler struct {
	svc *service.ActivityLogService
}

func NewActivityLogHandler(svc *service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{svc: svc}
}

func (h *ActivityLogHandler) List(c *gin.Context) {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")
	if entityType == "" || entityID == "" {
		BadRequest(c, "entity_type and entity_id are required")
		return
	}
	page, size := GetPagination(c)
	logs, total, err := h.svc.FindByEntity(c.Request.Context(), entityType, entityID, page, size)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: logs, Total: total, Page: page, Size: size})
}
