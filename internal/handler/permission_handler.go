package handler

import (
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	svc *service.PermissionService
}

func NewPermissionHandler(svc *service.PermissionService) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req service.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	perm, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, perm)
}

func (h *PermissionHandler) Update(c *gin.Context) {
	var req service.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	perm, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, perm)
}

func (h *PermissionHandler) Get(c *gin.Context) {
	perm, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, perm)
}

func (h *PermissionHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	perms, total, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: perms, Total: total, Page: page, Size: size})
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}
