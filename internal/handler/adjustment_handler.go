package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type AdjustmentHandler struct {
	wastageSvc *service.WastageService
	returnSvc  *service.ReturnService
}

func NewAdjustmentHandler(wastageSvc *service.WastageService, returnSvc *service.ReturnService) *AdjustmentHandler {
	return &AdjustmentHandler{wastageSvc: wastageSvc, returnSvc: returnSvc}
}

func (h *AdjustmentHandler) CreateWastage(c *gin.Context) {
	var req service.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.wastageSvc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, record)
}

func (h *AdjustmentHandler) DecideWastage(c *gin.Context) {
	var req service.DecideAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.wastageSvc.Decide(c.Request.Context(), c.Param("id"), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, record)
}

func (h *AdjustmentHandler) ListWastage(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.AdjustmentListParams{
		JobID:  c.Query("job_id"),
		Status: c.Query("status"),
		Page:   page,
		Size:   size,
	}
	items, total, err := h.wastageSvc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: items, Total: total, Page: page, Size: size})
}

func (h *AdjustmentHandler) CreateReturn(c *gin.Context) {
	var req service.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.returnSvc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, record)
}

func (h *AdjustmentHandler) DecideReturn(c *gin.Context) {
	var req service.DecideAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.returnSvc.Decide(c.Request.Context(), c.Param("id"), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, record)
}

func (h *AdjustmentHandler) ListReturn(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.AdjustmentListParams{
		JobID:  c.Query("job_id"),
		Status: c.Query("status"),
		Page:   page,
		Size:   size,
	}
	items, total, err := h.returnSvc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: items, Total: total, Page: page, Size: size})
}
