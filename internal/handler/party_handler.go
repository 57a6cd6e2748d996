package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	svc *service.VendorService
}

func NewVendorHandler(svc *service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req service.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	vendor, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	var req service.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	vendor, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, vendor)
}

func (h *VendorHandler) Get(c *gin.Context) {
	vendor, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, vendor)
}

func (h *VendorHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.PartyListParams{Keyword: c.Query("keyword"), Page: page, Size: size}
	vendors, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: vendors, Total: total, Page: page, Size: size})
}

func (h *VendorHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}

type ManufacturerHandler struct {
	svc *service.ManufacturerService
}

func NewManufacturerHandler(svc *service.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{svc: svc}
}

func (h *ManufacturerHandler) Create(c *gin.Context) {
	var req service.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	manufacturer, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, manufacturer)
}

func (h *ManufacturerHandler) Update(c *gin.Context) {
	var req service.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	manufacturer, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, manufacturer)
}

func (h *ManufacturerHandler) Get(c *gin.Context) {
	manufacturer, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, manufacturer)
}

func (h *ManufacturerHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.PartyListParams{Keyword: c.Query("keyword"), Page: page, Size: size}
	manufacturers, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: manufacturers, Total: total, Page: page, Size: size})
}

func (h *ManufacturerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}
