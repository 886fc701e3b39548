package models

import "time"

type Permission struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	Code      string    `gorm:"uniqueIndex;size:80;not null" json:"code"` // e.g. approveSaving
	Name      string    `gorm:"size:180;not null"            json:"name"` // label di UI
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mapping role -> permission. Role admin lolos semua check tanpa lewat tabel ini.
type RolePermission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Role         string `gorm:"size:20;not null;uniqueIndex:idx_role_perm" json:"role"`
	PermissionID uint   `gorm:"not null;uniqueIndex:idx_role_perm" json:"permission_id"`

	Permission Permission `json:"permission"`
}
