package entity

import "time"

// User is an admin account. Deactivated users keep their rows but fail the
// per-request auth check with 403.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Email     string     `json:"email" gorm:"size:128;not null;index"`
	Password  string     `json:"-" gorm:"size:128;not null"`
	RoleID    *string    `json:"role_id" gorm:"type:uuid;index"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Role *Permission `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

func (User) TableName() string {
	return "users"
}
