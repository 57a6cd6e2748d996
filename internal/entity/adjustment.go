package entity

import "time"

// Wastage/return approval states. Pending is the only non-terminal state.
const (
	AdjustmentStatusPending  = "Pending"
	AdjustmentStatusApproved = "Approved"
	AdjustmentStatusRejected = "Rejected"
)

// WastageMaterial records material lost during production. Approval credits
// the quantity back into the ledger.
type WastageMaterial struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID          string     `json:"job_id" gorm:"type:uuid;not null;index"`
	MaterialTypeID string     `json:"material_type_id" gorm:"type:uuid;not null"`
	MaterialNameID string     `json:"material_name_id" gorm:"type:uuid;not null"`
	UnitID         string     `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity       float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight         float64    `json:"weight" gorm:"type:decimal(12,4);default:0"`
	Notes          string     `json:"notes" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:20;not null;default:Pending"`
	CreatedBy      string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`
}

func (WastageMaterial) TableName() string {
	return "wastage_materials"
}

// ReturnMaterial records unused material returned after a job. Approval
// credits the quantity back into the ledger.
type ReturnMaterial struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID          string     `json:"job_id" gorm:"type:uuid;not null;index"`
	MaterialTypeID string     `json:"material_type_id" gorm:"type:uuid;not null"`
	MaterialNameID string     `json:"material_name_id" gorm:"type:uuid;not null"`
	UnitID         string     `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity       float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight         float64    `json:"weight" gorm:"type:decimal(12,4);default:0"`
	Notes          string     `json:"notes" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:20;not null;default:Pending"`
	CreatedBy      string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`
}

func (ReturnMaterial) TableName() string {
	return "return_materials"
}
