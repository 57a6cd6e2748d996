package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, job)
}

func (h *JobHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.JobListParams{
		Status:         c.Query("status"),
		Priority:       c.Query("priority"),
		ManufacturerID: c.Query("manufacturer_id"),
		Keyword:        c.Query("keyword"),
		Page:           page,
		Size:           size,
	}
	jobs, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: jobs, Total: total, Page: page, Size: size})
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, job)
}
