package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /api/admin/accounting/journals?startDate=&endDate=&page=&limit=
func GetJournals(c *gin.Context) {
	q := config.DB.Model(&models.Journal{}).
		Preload("Entries.Account").
		Order("entry_date DESC, id DESC")

	if v := c.Query("startDate"); v != "" {
		q = q.Where("entry_date::date >= ?", v)
	}
	if v := c.Query("endDate"); v != "" {
		q = q.Where("entry_date::date <= ?", v)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil jurnal", "error": err.Error()})
		return
	}
	var rows []models.Journal
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil jurnal", "error": err.Error()})
		return
	}
	utils.Paginated(c, rows, total, page, limit)
}

func GetJournalByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var journal models.Journal
	if err := config.DB.Preload("Entries.Account").First(&journal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Jurnal tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil jurnal", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil jurnal", journal)
}

type JournalEntryInput struct {
	AccountID uint            `json:"account_id" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type JournalInput struct {
	EntryDate   string              `json:"entry_date" binding:"required"` // YYYY-MM-DD
	Description string              `json:"description" binding:"required"`
	Entries     []JournalEntryInput `json:"entries" binding:"required"`
}

// validateJournalEntries memastikan jurnal manual seimbang: minimal dua
// baris, tiap baris tepat satu sisi terisi, total debit == total kredit,
// dan semua akunnya akun postable (bukan induk).
func validateJournalEntries(tx *gorm.DB, entries []JournalEntryInput) ([]models.JournalEntry, error) {
	if len(entries) < 2 {
		return nil, errUnbalancedJournal
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		debitSet := e.Debit.GreaterThan(decimal.Zero)
		creditSet := e.Credit.GreaterThan(decimal.Zero)
		if debitSet == creditSet { // dua-duanya terisi atau dua-duanya kosong
			return nil, errUnbalancedJournal
		}

		var acc models.Account
		if err := tx.First(&acc, e.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errNotFound
			}
			return nil, err
		}
		if acc.IsParent {
			return nil, errParentNotPostable
		}

		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
		out = append(out, models.JournalEntry{
			AccountID: e.AccountID,
			Debit:     e.Debit,
			Credit:    e.Credit,
		})
	}

	if !totalDebit.Equal(totalCredit) {
		return nil, errUnbalancedJournal
	}
	return out, nil
}

func CreateJournal(c *gin.Context) {
	var in JournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}
	entryDate, err := time.Parse("2006-01-02", in.EntryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Format tanggal harus YYYY-MM-DD"})
		return
	}

	var journal models.Journal
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		entries, err := validateJournalEntries(tx, in.Entries)
		if err != nil {
			return err
		}
		journal = models.Journal{
			EntryDate:   entryDate,
			Description: in.Description,
			Entries:     entries,
		}
		return tx.Create(&journal).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Jurnal dibuat", "data": journal})
	case errors.Is(err, errUnbalancedJournal):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Total debit dan kredit harus sama dan tiap baris tepat satu sisi"})
	case errors.Is(err, errParentNotPostable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun induk tidak boleh dipakai di jurnal"})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun tidak ditemukan"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat jurnal", "error": err.Error()})
	}
}

// PUT /api/admin/accounting/journals/:id - ganti header + seluruh baris, divalidasi ulang.
func UpdateJournal(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in JournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}
	entryDate, err := time.Parse("2006-01-02", in.EntryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Format tanggal harus YYYY-MM-DD"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var journal models.Journal
		if err := tx.Clauses(clauseUpdateLock()).First(&journal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		entries, err := validateJournalEntries(tx, in.Entries)
		if err != nil {
			return err
		}

		if err := tx.Model(&journal).Updates(map[string]any{
			"entry_date":  entryDate,
			"description": in.Description,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("journal_id = ?", journal.ID).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].JournalID = journal.ID
		}
		return tx.Create(&entries).Error
	})

	switch {
	case err == nil:
		var updated models.Journal
		config.DB.Preload("Entries.Account").First(&updated, id)
		utils.Success(c, "Jurnal diperbarui", updated)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Jurnal tidak ditemukan"})
	case errors.Is(err, errUnbalancedJournal):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Total debit dan kredit harus sama dan tiap baris tepat satu sisi"})
	case errors.Is(err, errParentNotPostable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun induk tidak boleh dipakai di jurnal"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui jurnal", "error": err.Error()})
	}
}

func DeleteJournal(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var journal models.Journal
		if err := tx.First(&journal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		return deleteJournalCascade(tx, journal.ID)
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Jurnal tidak ditemukan"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus jurnal", "error": err.Error()})
	}
}
