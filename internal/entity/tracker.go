package entity

import "time"

// ProductionTracker is a production-status history row for a job. A new row
// is appended every time the job transitions to "In Progress"; status
// updates target all rows of a job, not a single row by id.
type ProductionTracker struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	JobID       string     `json:"job_id" gorm:"type:uuid;not null;index"`
	Status      string     `json:"status" gorm:"size:20;not null"`
	Description string     `json:"description" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (ProductionTracker) TableName() string {
	return "production_trackers"
}
