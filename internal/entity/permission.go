package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionActions is the per-resource action flag set of a role.
type PermissionActions struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
	Export bool `json:"export"`
}

// PermissionItem grants actions on one named resource (e.g. "jobs").
type PermissionItem struct {
	Name    string            `json:"name"`
	Actions PermissionActions `json:"actions"`
}

// PermissionList maps to a Postgres jsonb column.
type PermissionList []PermissionItem

func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PermissionList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan PermissionList: %v", value)
	}
	return json.Unmarshal(bytes, p)
}

// Permission is a role with its resource/action grants. role_name is unique
// among non-deleted rows.
type Permission struct {
	ID         string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoleName   string         `json:"role_name" gorm:"size:64;not null;index"`
	Permission PermissionList `json:"permission" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  *time.Time     `json:"deleted_at" gorm:"index"`
}

func (Permission) TableName() string {
	return "permissions"
}

// Grants flattens the permission list into "resource:action" strings for
// JWT claims.
func (p *Permission) Grants() []string {
	var grants []string
	for _, item := range p.Permission {
		if item.Actions.View {
			grants = append(grants, item.Name+":view")
		}
		if item.Actions.Create {
			grants = append(grants, item.Name+":create")
		}
		if item.Actions.Edit {
			grants = append(grants, item.Name+":edit")
		}
		if item.Actions.Delete {
			grants = append(grants, item.Name+":delete")
		}
		if item.Actions.Export {
			grants = append(grants, item.Name+":export")
		}
	}
	return grants
}
