package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /api/admin/savings/bulk-upload (multipart "savingsFile").
// Batch bersifat all-or-nothing: semua baris tervalidasi dulu (anggota,
// tipe, mapping akun) sebelum ada satu pun tulisan ke database, lalu
// insert simpanan + SATU header jurnal untuk seluruh batch dalam satu
// transaksi.
func UploadBulkSavings(c *gin.Context) {
	fileHeader, err := c.FormFile("savingsFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tidak ada file yang diunggah"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Gagal membuka file", "error": err.Error()})
		return
	}
	defer file.Close()

	now := time.Now().UTC()
	rows, err := service.ParseBulkSavings(file, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var inserted int
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Kumpulkan ID unik lalu resolve dalam dua query.
		numbers := make([]string, 0, len(rows))
		typeNames := make([]string, 0, len(rows))
		seenNumber := map[string]bool{}
		seenType := map[string]bool{}
		for _, r := range rows {
			if !seenNumber[r.CooperativeNumber] {
				seenNumber[r.CooperativeNumber] = true
				numbers = append(numbers, r.CooperativeNumber)
			}
			if r.SavingTypeName != "" && !seenType[r.SavingTypeName] {
				seenType[r.SavingTypeName] = true
				typeNames = append(typeNames, r.SavingTypeName)
			}
		}

		var members []models.Member
		if err := tx.Where("cooperative_number IN ?", numbers).Find(&members).Error; err != nil {
			return err
		}
		memberByNumber := make(map[string]uint, len(members))
		for _, m := range members {
			memberByNumber[m.CooperativeNumber] = m.ID
		}

		var types []models.SavingType
		if err := tx.Where("name IN ?", typeNames).Find(&types).Error; err != nil {
			return err
		}
		typeByName := make(map[string]models.SavingType, len(types))
		for _, st := range types {
			typeByName[st.Name] = st
		}

		// Validasi semua baris SEBELUM menulis apa pun.
		for _, r := range rows {
			if _, ok := memberByNumber[r.CooperativeNumber]; !ok {
				return fmt.Errorf("baris %d: Nomor Koperasi %q tidak ditemukan", r.RowNumber, r.CooperativeNumber)
			}
			st, ok := typeByName[r.SavingTypeName]
			if !ok {
				return fmt.Errorf("baris %d: Tipe Simpanan %q tidak ditemukan", r.RowNumber, r.SavingTypeName)
			}
			if st.AccountID == nil {
				return fmt.Errorf("%w: tipe simpanan %q", errUnmappedAccount, st.Name)
			}
		}

		cash, err := resolveCashAccount(tx)
		if err != nil {
			return err
		}

		// Entri bulk dianggap sudah disetujui.
		savings := make([]models.Saving, 0, len(rows))
		for _, r := range rows {
			savings = append(savings, models.Saving{
				MemberID:     memberByNumber[r.CooperativeNumber],
				SavingTypeID: typeByName[r.SavingTypeName].ID,
				Amount:       r.Amount,
				Date:         r.Date,
				Status:       models.SavingApproved,
				Description:  r.Description,
			})
		}
		if err := tx.Create(&savings).Error; err != nil {
			return err
		}

		// Satu header jurnal untuk seluruh batch, dua baris per simpanan.
		journal := models.Journal{
			EntryDate:   now,
			Description: fmt.Sprintf("Input simpanan bulk via Excel tanggal %s", now.Format("2006-01-02")),
		}
		entries := make([]models.JournalEntry, 0, 2*len(rows))
		for _, r := range rows {
			st := typeByName[r.SavingTypeName]
			debitID, creditID := savingJournalAccounts(st.IsWithdrawal, cash.ID, *st.AccountID)
			entries = append(entries,
				models.JournalEntry{AccountID: debitID, Debit: r.Amount},
				models.JournalEntry{AccountID: creditID, Credit: r.Amount},
			)
		}
		journal.Entries = entries
		if err := tx.Create(&journal).Error; err != nil {
			return err
		}

		inserted = len(savings)
		return nil
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d baris data simpanan berhasil diunggah dan diproses", inserted)})
	case errors.Is(err, errMissingCashAccount), errors.Is(err, errUnmappedAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}

// GET /api/admin/savings/bulk-template - template Excel berisi anggota
// aktif dengan dropdown tipe simpanan.
func ExportSavingsTemplate(c *gin.Context) {
	var members []models.Member
	if err := config.DB.
		Where("status = ? AND role = ?", models.MemberActive, models.RoleMember).
		Order("name ASC").
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data anggota", "error": err.Error()})
		return
	}
	if len(members) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tidak ada anggota aktif untuk membuat template"})
		return
	}

	var typeNames []string
	if err := config.DB.Model(&models.SavingType{}).
		Order("name ASC").
		Pluck("name", &typeNames).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil tipe simpanan", "error": err.Error()})
		return
	}

	tplMembers := make([]service.TemplateMember, 0, len(members))
	for _, m := range members {
		tplMembers = append(tplMembers, service.TemplateMember{
			CooperativeNumber: m.CooperativeNumber,
			Name:              m.Name,
		})
	}

	f, err := service.BuildSavingsTemplate(tplMembers, typeNames)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat template", "error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="template_simpanan_anggota.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengekspor template", "error": err.Error()})
	}
}
