package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type MasterHandler struct {
	svc *service.MasterService
}

func NewMasterHandler(svc *service.MasterService) *MasterHandler {
	return &MasterHandler{svc: svc}
}

func (h *MasterHandler) Create(c *gin.Context) {
	var req service.CreateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	master, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Created(c, master)
}

func (h *MasterHandler) Update(c *gin.Context) {
	var req service.UpdateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	master, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, master)
}

func (h *MasterHandler) Get(c *gin.Context) {
	master, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, master)
}

func (h *MasterHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.MasterListParams{
		ParentID: c.Query("parent_id"),
		RootOnly: c.Query("root_only") == "true",
		Keyword:  c.Query("keyword"),
		Page:     page,
		Size:     size,
	}
	masters, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: masters, Total: total, Page: page, Size: size})
}

func (h *MasterHandler) Tree(c *gin.Context) {
	tree, err := h.svc.Tree(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, tree)
}

func (h *MasterHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		FromServiceError(c, err)
		return
	}
	Success(c, nil)
}
