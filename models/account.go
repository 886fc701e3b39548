package models

import "time"

// Tipe akun utama COA.
const (
	AccountAsset     = "Asset"
	AccountLiability = "Liability"
	AccountEquity    = "Equity"
	AccountIncome    = "Income"
	AccountExpense   = "Expense"
)

type AccountType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:60;not null" json:"name"` // Asset/Liability/Equity/Income/Expense
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chart of Accounts. Akun induk (IsParent) tidak boleh dipakai di jurnal.
type Account struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AccountNumber string `gorm:"uniqueIndex;size:20;not null" json:"account_number"` // e.g. 1-1110
	Name          string `gorm:"size:180;not null" json:"name"`

	AccountTypeID uint        `gorm:"index;not null" json:"account_type_id"`
	AccountType   AccountType `json:"account_type"`

	ParentID    *uint  `gorm:"index" json:"parent_id"`
	IsParent    bool   `gorm:"not null;default:false" json:"is_parent"`
	Description string `gorm:"size:255" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
