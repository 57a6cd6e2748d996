package entity

import "time"

// ActivityLog records who did what to which entity. Written on job status
// transitions and wastage/return decisions.
type ActivityLog struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EntityType string `json:"entity_type" gorm:"size:50;not null;index:idx_activity_entity"` // job/wastage_material/return_material
	EntityID   string `json:"entity_id" gorm:"type:uuid;not null;index:idx_activity_entity"`
	EntityCode string `json:"entity_code" gorm:"size:50"`

	Action     string `json:"action" gorm:"size:50;not null"` // create/status_change/approve/reject
	FromStatus string `json:"from_status" gorm:"size:20"`
	ToStatus   string `json:"to_status" gorm:"size:20"`

	Content  string `json:"content" gorm:"type:text"`
	Metadata JSONB  `json:"metadata" gorm:"type:jsonb"`

	OperatorID string    `json:"operator_id" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
