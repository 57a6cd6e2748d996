package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type TrackerHandler struct {
	svc *service.TrackerService
}

func NewTrackerHandler(svc *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{svc: svc}
}

// UpdateStatus handles PUT /production-tracker/status/:id where :id is the
// job id; all tracker rows of the job are updated together.
func (h *TrackerHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateTrackerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req, GetUserID(c)); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}

func (h *TrackerHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.TrackerListParams{
		JobID:  c.Query("job_id"),
		Status: c.Query("status"),
		Page:   page,
		Size:   size,
	}
	trackers, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: trackers, Total: total, Page: page, Size: size})
}
