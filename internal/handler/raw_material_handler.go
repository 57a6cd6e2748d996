package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type RawMaterialHandler struct {
	svc *service.RawMaterialService
}

func NewRawMaterialHandler(svc *service.RawMaterialService) *RawMaterialHandler {
	return &RawMaterialHandler{svc: svc}
}

func (h *RawMaterialHandler) Create(c *gin.Context) {
	var req service.CreateRawMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	material, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, material)
}

func (h *RawMaterialHandler) Update(c *gin.Context) {
	var req service.UpdateRawMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	material, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, GetUserID(c))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, material)
}

func (h *RawMaterialHandler) Get(c *gin.Context) {
	material, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, material)
}

func (h *RawMaterialHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.RawMaterialListParams{
		MaterialTypeID: c.Query("material_type_id"),
		MaterialNameID: c.Query("material_name_id"),
		VendorID:       c.Query("vendor_id"),
		Page:           page,
		Size:           size,
	}
	materials, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: materials, Total: total, Page: page, Size: size})
}

func (h *RawMaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}
