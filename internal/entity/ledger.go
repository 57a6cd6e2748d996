package entity

import (
	"time"
)

// Ledger transaction types. Stock on hand is derived by summing signed
// quantities: IN adds, OUT subtracts.
const (
	TxTypeIn  = "IN"
	TxTypeOut = "OUT"
)

// RawMaterial is a purchased stock item. Creating one writes an IN ledger
// row; editing it overwrites the quantity/weight of its linked rows.
type RawMaterial struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MaterialTypeID string     `json:"material_type_id" gorm:"type:uuid;not null;index"`
	MaterialNameID string     `json:"material_name_id" gorm:"type:uuid;not null;index"`
	UnitID         string     `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity       float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight         float64    `json:"weight" gorm:"type:decimal(12,4);default:0"`
	Cost           float64    `json:"cost" gorm:"type:decimal(12,2);default:0"`
	VendorID       *string    `json:"vendor_id" gorm:"type:uuid;index"`
	CreatedBy      string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (RawMaterial) TableName() string {
	return "raw_materials"
}

// RawMaterialTransaction is one signed movement in the material ledger.
// Rows are append-only; the raw-material edit path is the only place that
// rewrites linked rows.
type RawMaterialTransaction struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RawMaterialID   *string    `json:"raw_material_id" gorm:"type:uuid;index"`
	JobID           *string    `json:"job_id" gorm:"type:uuid;index"`
	JobMaterialsID  *string    `json:"job_materials_id" gorm:"type:uuid;index"`
	MaterialTypeID  string     `json:"material_type_id" gorm:"type:uuid;not null;index"`
	MaterialNameID  string     `json:"material_name_id" gorm:"type:uuid;not null;index"`
	UnitID          string     `json:"unit_id" gorm:"type:uuid;not null"`
	TransactionType string     `json:"transaction_type" gorm:"size:5;not null"`
	Quantity        float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight          float64    `json:"weight" gorm:"type:decimal(12,4);default:0"`
	VendorID        *string    `json:"vendor_id" gorm:"type:uuid"`
	ManufacturerID  *string    `json:"manufacturer_id" gorm:"type:uuid"`
	CreatedBy       string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at" gorm:"index"`
}

func (RawMaterialTransaction) TableName() string {
	return "raw_material_transactions"
}
