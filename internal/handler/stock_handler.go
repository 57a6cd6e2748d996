package handler

import (
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Stock serves the derived on-hand view. With material_type_id and
// material_name_id it returns a single balance, otherwise a paginated
// summary.
func (h *StockHandler) Stock(c *gin.Context) {
	typeID := c.Query("material_type_id")
	nameID := c.Query("material_name_id")
	if typeID != "" && nameID != "" {
		row, err := h.svc.GetStock(c.Request.Context(), typeID, nameID)
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		Success(c, row)
		return
	}

	page, size := GetPagination(c)
	rows, total, err := h.svc.StockSummary(c.Request.Context(), page, size)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: rows, Total: total, Page: page, Size: size})
}

func (h *StockHandler) Transactions(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.TransactionListParams{
		MaterialTypeID:  c.Query("material_type_id"),
		MaterialNameID:  c.Query("material_name_id"),
		JobID:           c.Query("job_id"),
		TransactionType: c.Query("transaction_type"),
		Page:            page,
		Size:            size,
	}
	txs, total, err := h.svc.Transactions(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData{Items: txs, Total: total, Page: page, Size: size})
}
