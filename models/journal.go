package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header jurnal umum. Satu header per event posting (atau satu per batch bulk).
type Journal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntryDate   time.Time `gorm:"not null;index" json:"entry_date"`
	Description string    `gorm:"size:255;not null" json:"description"`

	Entries []JournalEntry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"entries"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Baris jurnal: tepat satu dari debit/credit yang terisi.
// Invariant per header: sum(debit) == sum(credit), dijaga oleh poster.
type JournalEntry struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	JournalID uint `gorm:"index;not null" json:"journal_id"`
	AccountID uint `gorm:"index;not null" json:"account_id"`

	Debit  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"debit"`
	Credit decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"credit"`

	Account Account `json:"account"`
}
