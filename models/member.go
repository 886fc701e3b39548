package models

import "time"

// Role anggota sekaligus staf (admin/akunting/manager pakai tabel yang sama).
const (
	RoleMember   = "member"
	RoleAdmin    = "admin"
	RoleAkunting = "akunting"
	RoleManager  = "manager"
)

const (
	MemberPending  = "Pending"
	MemberActive   = "Active"
	MemberRejected = "Rejected"
	MemberResigned = "Resigned"
)

type Member struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	CooperativeNumber string `gorm:"uniqueIndex;size:32;not null" json:"cooperative_number"`
	Name              string `gorm:"size:180;not null" json:"name"`
	Email             string `gorm:"uniqueIndex;size:180;not null" json:"email"`
	PasswordHash      string `gorm:"size:255;not null" json:"-"`

	Phone   string `gorm:"size:60" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Role   string `gorm:"size:20;not null;default:member;index" json:"role"`
	Status string `gorm:"size:20;not null;default:Pending;index" json:"status"`

	// Path file bukti identitas; penyimpanan file di luar tanggung jawab API.
	KTPPhotoPath    string `gorm:"size:255" json:"ktp_photo_path,omitempty"`
	SelfiePhotoPath string `gorm:"size:255" json:"selfie_photo_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
