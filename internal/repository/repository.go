package repository

import "gorm.io/gorm"

// Repositories bundles all data-access objects for dependency injection.
type Repositories struct {
	User         *UserRepository
	Permission   *PermissionRepository
	Master       *MasterRepository
	Vendor       *VendorRepository
	Manufacturer *ManufacturerRepository
	Job          *JobRepository
	Tracker      *TrackerRepository
	RawMaterial  *RawMaterialRepository
	Ledger       *LedgerRepository
	Wastage      *WastageRepository
	Return       *ReturnRepository
	ActivityLog  *ActivityLogRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Permission:   NewPermissionRepository(db),
		Master:       NewMasterRepository(db),
		Vendor:       NewVendorRepository(db),
		Manufacturer: NewManufacturerRepository(db),
		Job:          NewJobRepository(db),
		Tracker:      NewTrackerRepository(db),
		RawMaterial:  NewRawMaterialRepository(db),
		Ledger:       NewLedgerRepository(db),
		Wastage:      NewWastageRepository(db),
		Return:       NewReturnRepository(db),
		ActivityLog:  NewActivityLogRepository(db),
	}
}
