package service

import (
	"errors"

	"github.com/gemforge/atelier/internal/config"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Sentinel business errors. Handlers map these onto the HTTP taxonomy;
// missing rows and duplicates both surface as 400 by API convention.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("duplicate value")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("account deactivated")
)

// Services bundles all business services for dependency injection.
type Services struct {
	Auth         *AuthService
	User         *UserService
	Permission   *PermissionService
	Master       *MasterService
	Vendor       *VendorService
	Manufacturer *ManufacturerService
	Job          *JobService
	Tracker      *TrackerService
	Wastage      *WastageService
	Return       *ReturnService
	RawMaterial  *RawMaterialService
	Stock        *StockService
	ActivityLog  *ActivityLogService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, rdb, cfg),
		User:         NewUserService(repos.User),
		Permission:   NewPermissionService(repos.Permission),
		Master:       NewMasterService(repos.Master),
		Vendor:       NewVendorService(repos.Vendor),
		Manufacturer: NewManufacturerService(repos.Manufacturer),
		Job:          NewJobService(repos.Job, repos.ActivityLog, db),
		Tracker:      NewTrackerService(repos.Tracker, repos.ActivityLog, db),
		Wastage:      NewWastageService(repos.Wastage, repos.ActivityLog, db),
		Return:       NewReturnService(repos.Return, repos.ActivityLog, db),
		RawMaterial:  NewRawMaterialService(repos.RawMaterial, db),
		Stock:        NewStockService(repos.Ledger),
		ActivityLog:  NewActivityLogService(repos.ActivityLog),
	}
}
