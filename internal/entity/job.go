package entity

import (
	"time"
)

// Job statuses
const (
	JobStatusPending    = "Pending"
	JobStatusInProgress = "In Progress"
	JobStatusCompleted  = "Completed"
	JobStatusOnHold     = "On Hold"
	JobStatusQc         = "Qc"
	JobStatusCancelled  = "Cancelled"
)

// Job priorities
const (
	JobPriorityLow    = "Low"
	JobPriorityMedium = "Medium"
	JobPriorityHigh   = "High"
)

// Job is a manufacturing work order consuming raw materials.
type Job struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobCode        string     `json:"job_code" gorm:"size:50;not null;index"`
	ProductName    string     `json:"product_name" gorm:"size:128;not null"`
	CustomerName   string     `json:"customer_name" gorm:"size:128"`
	Priority       string     `json:"priority" gorm:"size:10;not null;default:Medium"`
	DueDate        *time.Time `json:"due_date"`
	CostEstimate   float64    `json:"cost_estimate" gorm:"type:decimal(12,2);default:0"`
	ManufacturerID *string    `json:"manufacturer_id" gorm:"type:uuid;index"`
	Status         string     `json:"status" gorm:"size:20;not null;default:Pending"`
	CreatedBy      string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`

	Materials    []JobMaterial `json:"materials,omitempty" gorm:"foreignKey:JobID"`
	Manufacturer *Manufacturer `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`
}

func (Job) TableName() string {
	return "jobs"
}

// JobMaterial is one raw-material line consumed by a job.
type JobMaterial struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID          string     `json:"job_id" gorm:"type:uuid;not null;index"`
	MaterialTypeID string     `json:"material_type_id" gorm:"type:uuid;not null"`
	MaterialNameID string     `json:"material_name_id" gorm:"type:uuid;not null"`
	UnitID         string     `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity       float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight         float64    `json:"weight" gorm:"type:decimal(12,4);default:0"`
	MaterialCost   float64    `json:"material_cost" gorm:"type:decimal(12,2);default:0"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`
}

func (JobMaterial) TableName() string {
	return "job_materials"
}
