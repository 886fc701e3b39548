package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// Sentinel error bersama untuk alur posting; di-wrap dengan fmt.Errorf("%w: ...")
// kalau pesannya perlu menyebut entitasnya.
var (
	errNotFound             = errors.New("data tidak ditemukan")
	errInvalidStatus        = errors.New("status tidak valid")
	errUnmappedAccount      = errors.New("tipe belum terhubung ke akun COA")
	errMissingCashAccount   = errors.New("akun Kas tidak ditemukan di COA")
	errMissingSalesAccount  = errors.New("akun Pendapatan Penjualan tidak ditemukan di COA")
	errInstallmentNotFound  = errors.New("angsuran tidak ditemukan atau sudah dibayar")
	errAlreadyProcessed     = errors.New("request sudah diproses")
	errBadStatusTransition  = errors.New("transisi status tidak diizinkan")
	errUnbalancedJournal    = errors.New("total debit dan kredit jurnal harus sama")
	errParentNotPostable    = errors.New("akun induk tidak boleh dipakai di jurnal")
	errInsufficientStock    = errors.New("stok produk tidak cukup")
)

// resolveCashAccount mencari akun kas yang ditunjuk config, per operasi,
// di dalam transaksi yang sama. Satu mekanisme untuk jalur tunggal & bulk.
func resolveCashAccount(tx *gorm.DB) (*models.Account, error) {
	return resolveAccountByNumber(tx, config.CashAccountNumber, errMissingCashAccount)
}

func resolveAccountByNumber(tx *gorm.DB, number string, missing error) (*models.Account, error) {
	var acc models.Account
	if err := tx.Where("account_number = ?", number).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (%s)", missing, number)
		}
		return nil, err
	}
	return &acc, nil
}

// postJournalPair membuat satu header jurnal + tepat dua baris (debit/kredit
// dengan jumlah sama). Seimbang by construction; dipanggil di dalam transaksi
// pemanggil supaya ikut rollback.
func postJournalPair(tx *gorm.DB, entryDate time.Time, description string, debitAccountID, creditAccountID uint, amount decimal.Decimal) (uint, error) {
	journal := models.Journal{
		EntryDate:   entryDate,
		Description: description,
		Entries: []models.JournalEntry{
			{AccountID: debitAccountID, Debit: amount, Credit: decimal.Zero},
			{AccountID: creditAccountID, Debit: decimal.Zero, Credit: amount},
		},
	}
	if err := tx.Create(&journal).Error; err != nil {
		return 0, err
	}
	return journal.ID, nil
}

// savingJournalAccounts menentukan arah jurnal simpanan: setoran mendebit
// kas dan mengkredit akun simpanan; penarikan kebalikannya.
func savingJournalAccounts(isWithdrawal bool, cashAccountID, mappedAccountID uint) (debitID, creditID uint) {
	if isWithdrawal {
		return mappedAccountID, cashAccountID
	}
	return cashAccountID, mappedAccountID
}

// savingJournalDescription menyusun deskripsi jurnal yang menyebut nama
// anggota dan label tipenya.
func savingJournalDescription(isWithdrawal bool, typeName, memberName string) string {
	if isWithdrawal {
		return fmt.Sprintf("Penarikan simpanan a/n %s", memberName)
	}
	return fmt.Sprintf("Setoran %s a/n %s", typeName, memberName)
}

// deleteJournalCascade menghapus header jurnal beserta barisnya. Dipakai
// saat record sumber (simpanan dll.) dihapus.
func deleteJournalCascade(tx *gorm.DB, journalID uint) error {
	if err := tx.Where("journal_id = ?", journalID).Delete(&models.JournalEntry{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Journal{}, journalID).Error
}
