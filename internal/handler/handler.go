package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers bundles all HTTP handlers for route registration.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Permission   *PermissionHandler
	Master       *MasterHandler
	Vendor       *VendorHandler
	Manufacturer *ManufacturerHandler
	Job          *JobHandler
	Tracker      *TrackerHandler
	Adjustment   *AdjustmentHandler
	RawMaterial  *RawMaterialHandler
	Stock        *StockHandler
	ActivityLog  *ActivityLogHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Permission:   NewPermissionHandler(services.Permission),
		Master:       NewMasterHandler(services.Master),
		Vendor:       NewVendorHandler(services.Vendor),
		Manufacturer: NewManufacturerHandler(services.Manufacturer),
		Job:          NewJobHandler(services.Job),
		Tracker:      NewTrackerHandler(services.Tracker),
		Adjustment:   NewAdjustmentHandler(services.Wastage, services.Return),
		RawMaterial:  NewRawMaterialHandler(services.RawMaterial),
		Stock:        NewStockHandler(services.Stock),
		ActivityLog:  NewActivityLogHandler(services.ActivityLog),
	}
}

// Response is the wire envelope: {status, message, data} on success,
// {status, message} on errors.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListData struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: "success", Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Status: "success", Message: "success", Data: data})
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{Status: "error", Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromServiceError maps business errors onto the HTTP taxonomy. Missing
// rows are reported as 400, not 404, by API convention.
func FromServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, size int) {
	page = 1
	size = 20
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			size = v
		}
	}
	return page, size
}
