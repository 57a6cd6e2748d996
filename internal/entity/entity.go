package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates all application tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// access control
		&User{},
		&Permission{},

		// reference data
		&Master{},
		&Vendor{},
		&Manufacturer{},

		// jobs
		&Job{},
		&JobMaterial{},
		&ProductionTracker{},

		// inventory
		&RawMaterial{},
		&RawMaterialTransaction{},
		&WastageMaterial{},
		&ReturnMaterial{},

		// audit
		&ActivityLog{},
	)
}
