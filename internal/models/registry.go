package models

import "time"

// EditorRegistry is the administrator-managed roster of editors. Email is the
// join key against report submissions; YaasID is the org-assigned identifier
// backfilled onto user profiles on first login.
type EditorRegistry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	YaasID    string    `gorm:"size:50" json:"yaas_id"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EditorRegistry) TableName() string { return "editor_registry" }

// IP is one project/intellectual-property name selectable on the report form.
type IP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IP) TableName() string { return "ips" }
