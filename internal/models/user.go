package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can sign in: an editor or an administrator.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // Hashed password, empty for LDAP users
	FullName  string         `gorm:"size:200" json:"full_name"`
	YaasID    string         `gorm:"size:50;index" json:"yaas_id"`
	Role      string         `gorm:"size:50;default:editor" json:"role"`     // admin, editor
	AuthType  string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
