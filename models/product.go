package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SalePending   = "Pending"
	SaleCompleted = "Completed"
	SaleCancelled = "Cancelled"
)

// Produk toko koperasi.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:180;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	ImagePath   string          `gorm:"size:255" json:"image_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pesanan toko. Pesanan anggota dibuat Pending lalu diselesaikan kasir;
// cash sale langsung Completed dengan jurnal kas.
type Sale struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;size:32;not null" json:"order_number"`

	// Nol untuk penjualan tunai non-anggota.
	MemberID *uint `gorm:"index" json:"member_id"`

	Total  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	Status string          `gorm:"size:20;not null;default:Pending;index" json:"status"`

	JournalID *uint `gorm:"index" json:"journal_id"`

	Member *Member    `json:"member,omitempty"`
	Items  []SaleItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaleItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SaleID    uint `gorm:"index;not null" json:"sale_id"`
	ProductID uint `gorm:"not null" json:"product_id"`

	Name      string          `gorm:"size:180;not null" json:"name"` // snapshot nama produk
	Qty       int             `gorm:"not null" json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"line_total"`
}
