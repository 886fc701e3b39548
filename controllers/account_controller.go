package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/service"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetAccounts(c *gin.Context) {
	var rows []models.Account
	if err := config.DB.Preload("AccountType").
		Order("account_number ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil COA", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil COA", rows)
}

// Hanya akun non-induk yang boleh muncul di form jurnal.
func GetJournalableAccounts(c *gin.Context) {
	var rows []models.Account
	if err := config.DB.Preload("AccountType").
		Where("is_parent = false").
		Order("account_number ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil akun", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil akun", rows)
}

type AccountInput struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Name          string `json:"name" binding:"required"`
	AccountTypeID uint   `json:"account_type_id" binding:"required"`
	ParentID      *uint  `json:"parent_id"`
	IsParent      bool   `json:"is_parent"`
	Description   string `json:"description"`
}

func CreateAccount(c *gin.Context) {
	var in AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}

	var exists models.Account
	if err := config.DB.Where("account_number = ?", in.AccountNumber).First(&exists).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nomor akun sudah dipakai"})
		return
	}

	acc := models.Account{
		AccountNumber: in.AccountNumber,
		Name:          in.Name,
		AccountTypeID: in.AccountTypeID,
		ParentID:      in.ParentID,
		IsParent:      in.IsParent,
		Description:   in.Description,
	}
	if err := config.DB.Create(&acc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat akun", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Akun dibuat", "data": acc})
}

func UpdateAccount(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}

	res := config.DB.Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"account_number":  in.AccountNumber,
			"name":            in.Name,
			"account_type_id": in.AccountTypeID,
			"parent_id":       in.ParentID,
			"is_parent":       in.IsParent,
			"description":     in.Description,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui akun", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Akun tidak ditemukan"})
		return
	}

	var updated models.Account
	config.DB.Preload("AccountType").First(&updated, id)
	utils.Success(c, "Akun diperbarui", updated)
}

// Akun yang sudah dipakai jurnal tidak boleh dihapus.
func DeleteAccount(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var used int64
	if err := config.DB.Model(&models.JournalEntry{}).
		Where("account_id = ?", id).
		Count(&used).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memeriksa pemakaian akun", "error": err.Error()})
		return
	}
	if used > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun sudah dipakai di jurnal dan tidak bisa dihapus"})
		return
	}

	res := config.DB.Delete(&models.Account{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus akun", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Akun tidak ditemukan"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/admin/accounting/accounts/export - seluruh COA sebagai workbook Excel.
func ExportAccountsToExcel(c *gin.Context) {
	var accounts []models.Account
	if err := config.DB.Preload("AccountType").
		Order("account_number ASC").
		Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil COA", "error": err.Error()})
		return
	}

	numberByID := make(map[uint]string, len(accounts))
	for _, a := range accounts {
		numberByID[a.ID] = a.AccountNumber
	}

	rows := make([]service.AccountRow, 0, len(accounts))
	for _, a := range accounts {
		parent := ""
		if a.ParentID != nil {
			parent = numberByID[*a.ParentID]
		}
		rows = append(rows, service.AccountRow{
			AccountNumber: a.AccountNumber,
			Name:          a.Name,
			TypeName:      a.AccountType.Name,
			ParentNumber:  parent,
			Description:   a.Description,
		})
	}

	f, err := service.BuildAccountsWorkbook(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat workbook", "error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="chart_of_accounts.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengekspor COA", "error": err.Error()})
	}
}

// POST /api/admin/accounting/accounts/import (multipart "accountsFile") - upsert COA
// dari Excel dalam satu transaksi; baris dengan tipe akun tak dikenal
// menggagalkan seluruh import.
func ImportAccountsFromExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("accountsFile")
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

	rows, err := service.ParseAccountsWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var imported int
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var types []models.AccountType
		if err := tx.Find(&types).Error; err != nil {
			return err
		}
		typeByName := make(map[string]uint, len(types))
		for _, t := range types {
			typeByName[t.Name] = t.ID
		}

		// Pass pertama: upsert akun tanpa relasi induk.
		for _, r := range rows {
			typeID, ok := typeByName[r.TypeName]
			if !ok {
				return errors.New("baris " + strconv.Itoa(r.RowNumber) + ": tipe akun \"" + r.TypeName + "\" tidak dikenal")
			}

			var acc models.Account
			err := tx.Where("account_number = ?", r.AccountNumber).First(&acc).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				acc = models.Account{
					AccountNumber: r.AccountNumber,
					Name:          r.Name,
					AccountTypeID: typeID,
					Description:   r.Description,
				}
				if err := tx.Create(&acc).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := tx.Model(&acc).Updates(map[string]any{
					"name":            r.Name,
					"account_type_id": typeID,
					"description":     r.Description,
				}).Error; err != nil {
					return err
				}
			}
		}

		// Pass kedua: sambungkan akun induk (induknya mungkin baru dibuat
		// di pass pertama).
		for _, r := range rows {
			if r.ParentNumber == "" {
				continue
			}
			var parent models.Account
			if err := tx.Where("account_number = ?", r.ParentNumber).First(&parent).Error; err != nil {
				return errors.New("baris " + strconv.Itoa(r.RowNumber) + ": akun induk \"" + r.ParentNumber + "\" tidak ditemukan")
			}
			if err := tx.Model(&models.Account{}).
				Where("account_number = ?", r.AccountNumber).
				Update("parent_id", parent.ID).Error; err != nil {
				return err
			}
			if err := tx.Model(&parent).Update("is_parent", true).Error; err != nil {
				return err
			}
		}

		imported = len(rows)
		return nil
	})

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": strconv.Itoa(imported) + " akun berhasil diimpor"})
}

// ===== Account Types

func GetAccountTypes(c *gin.Context) {
	var rows []models.AccountType
	if err := config.DB.Order("id ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil tipe akun", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil tipe akun", rows)
}
