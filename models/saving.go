package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SavingPending  = "Pending"
	SavingApproved = "Approved"
	SavingRejected = "Rejected"
)

// Tipe simpanan. AccountID adalah mapping ke COA; wajib terisi sebelum
// transaksi tipe ini bisa di-approve (posting jurnal).
type SavingType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`

	// true = penarikan: arah jurnal dibalik (debit akun simpanan, kredit kas).
	IsWithdrawal bool `gorm:"not null;default:false" json:"is_withdrawal"`

	AccountID *uint    `gorm:"index" json:"account_id"`
	Account   *Account `json:"account,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Saving struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	MemberID     uint `gorm:"index;not null" json:"member_id"`
	SavingTypeID uint `gorm:"index;not null" json:"saving_type_id"`

	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Status      string          `gorm:"size:20;not null;default:Pending;index" json:"status"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	ProofPath   string          `gorm:"size:255" json:"proof_path,omitempty"`

	// Terisi saat approve; ikut terhapus (beserta barisnya) saat simpanan dihapus.
	JournalID *uint `gorm:"index" json:"journal_id"`

	Member     Member     `json:"member"`
	SavingType SavingType `json:"saving_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
