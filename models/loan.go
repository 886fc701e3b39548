package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Progres status pinjaman: Pending -> Approved by Accounting -> Approved -> Lunas.
// Rejected bisa terjadi di dua tahap awal.
const (
	LoanPending            = "Pending"
	LoanApprovedAccounting = "Approved by Accounting"
	LoanApproved           = "Approved"
	LoanRejected           = "Rejected"
	LoanPaidOff            = "Lunas"
)

// Tipe pinjaman dengan bunga flat per bulan (persen dari pokok awal).
// AccountID adalah mapping ke akun piutang di COA.
type LoanType struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"uniqueIndex;size:120;not null" json:"name"`
	InterestRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"interest_rate"`
	Description  string          `gorm:"size:255" json:"description,omitempty"`

	AccountID *uint    `gorm:"index" json:"account_id"`
	Account   *Account `json:"account,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pilihan tenor (bulan) yang ditawarkan ke anggota.
type LoanTerm struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Months    int       `gorm:"uniqueIndex;not null" json:"months"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Loan struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	MemberID   uint `gorm:"index;not null" json:"member_id"`
	LoanTypeID uint `gorm:"index;not null" json:"loan_type_id"`

	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	TenorMonths int             `gorm:"not null" json:"tenor_months"`
	Purpose     string          `gorm:"size:255" json:"purpose,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Status      string          `gorm:"size:30;not null;default:Pending;index" json:"status"`

	// Jurnal pencairan, terisi saat approval final.
	JournalID *uint `gorm:"index" json:"journal_id"`

	Member       Member            `json:"member"`
	LoanType     LoanType          `json:"loan_type"`
	Installments []LoanInstallment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"installments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoanInstallment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	LoanID uint `gorm:"index;not null;uniqueIndex:idx_loan_installment" json:"loan_id"`

	InstallmentNumber int       `gorm:"not null;uniqueIndex:idx_loan_installment" json:"installment_number"`
	DueDate           time.Time `gorm:"not null" json:"due_date"`

	Principal decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"principal"`
	Interest  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"interest"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // principal + interest

	IsPaid   bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidDate *time.Time `json:"paid_date,omitempty"`

	// Jurnal penerimaan angsuran, terisi saat pembayaran dicatat.
	JournalID *uint `gorm:"index" json:"journal_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
