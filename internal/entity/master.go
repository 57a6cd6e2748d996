package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB maps to a Postgres jsonb column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONB: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// Master is a generic hierarchical lookup row (material types, names, units,
// role groups). Children carry parent_code/group_name copied from the parent
// at creation time; a later parent rename does not touch them.
type Master struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string     `json:"name" gorm:"size:128;not null"`
	Code       string     `json:"code" gorm:"size:64;not null;index"`
	ParentID   *string    `json:"parent_id" gorm:"type:uuid;index"`
	ParentCode string     `json:"parent_code" gorm:"size:64"`
	GroupName  string     `json:"group_name" gorm:"size:128"`
	Sequence   int        `json:"sequence" gorm:"default:0"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at" gorm:"index"`

	Children []Master `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (Master) TableName() string {
	return "masters"
}
