package controllers

import (
	"net/http"
	"strconv"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ===== Saving Types

func GetSavingTypes(c *gin.Context) {
	var rows []models.SavingType
	if err := config.DB.Preload("Account").Order("name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil tipe simpanan", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil tipe simpanan", rows)
}

type SavingTypeInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	IsWithdrawal bool   `json:"is_withdrawal"`
}

func CreateSavingType(c *gin.Context) {
	var in SavingTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}

	st := models.SavingType{Name: in.Name, Description: in.Description, IsWithdrawal: in.IsWithdrawal}
	if err := config.DB.Create(&st).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat tipe simpanan", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tipe simpanan dibuat", "data": st})
}

func UpdateSavingType(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in SavingTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid", "error": err.Error()})
		return
	}

	res := config.DB.Model(&models.SavingType{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          in.Name,
			"description":   in.Description,
			"is_withdrawal": in.IsWithdrawal,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui tipe simpanan", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe simpanan tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tipe simpanan diperbarui"})
}

func DeleteSavingType(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var used int64
	config.DB.Model(&models.Saving{}).Where("saving_type_id = ?", id).Count(&used)
	if used > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tipe simpanan sudah dipakai dan tidak bisa dihapus"})
		return
	}

	res := config.DB.Delete(&models.SavingType{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus tipe simpanan", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe simpanan tidak ditemukan"})
		return
	}
	c.Status(http.StatusNoContent)
}

type MapAccountInput struct {
	AccountID uint `json:"account_id" binding:"required"`
}

// PUT /api/admin/settings/saving-types/:id/account - prasyarat posting:
// tipe simpanan harus terhubung ke akun COA non-induk.
func MapSavingAccount(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in MapAccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	var acc models.Account
	if err := config.DB.First(&acc, in.AccountID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun tidak ditemukan"})
		return
	}
	if acc.IsParent {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun induk tidak bisa jadi mapping"})
		return
	}

	res := config.DB.Model(&models.SavingType{}).
		Where("id = ?", id).
		Update("account_id", acc.ID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan mapping", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe simpanan tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mapping akun simpanan disimpan"})
}

func MapLoanAccount(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in MapAccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	var acc models.Account
	if err := config.DB.First(&acc, in.AccountID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun tidak ditemukan"})
		return
	}
	if acc.IsParent {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Akun induk tidak bisa jadi mapping"})
		return
	}

	res := config.DB.Model(&models.LoanType{}).
		Where("id = ?", id).
		Update("account_id", acc.ID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan mapping", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe pinjaman tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mapping akun pinjaman disimpan"})
}

// ===== Loan Types

func GetLoanTypes(c *gin.Context) {
	var rows []models.LoanType
	if err := config.DB.Preload("Account").Order("name ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil tipe pinjaman", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil tipe pinjaman", rows)
}

type LoanTypeInput struct {
	Name         string          `json:"name" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Description  string          `json:"description"`
}

func CreateLoanType(c *gin.Context) {
	var in LoanTypeInput
	if err := c.ShouldBindJSON(&in); err != nil || in.InterestRate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	lt := models.LoanType{Name: in.Name, InterestRate: in.InterestRate, Description: in.Description}
	if err := config.DB.Create(&lt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat tipe pinjaman", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tipe pinjaman dibuat", "data": lt})
}

func UpdateLoanType(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in LoanTypeInput
	if err := c.ShouldBindJSON(&in); err != nil || in.InterestRate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	res := config.DB.Model(&models.LoanType{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          in.Name,
			"interest_rate": in.InterestRate,
			"description":   in.Description,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui tipe pinjaman", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe pinjaman tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tipe pinjaman diperbarui"})
}

func DeleteLoanType(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var used int64
	config.DB.Model(&models.Loan{}).Where("loan_type_id = ?", id).Count(&used)
	if used > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tipe pinjaman sudah dipakai dan tidak bisa dihapus"})
		return
	}

	res := config.DB.Delete(&models.LoanType{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus tipe pinjaman", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tipe pinjaman tidak ditemukan"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Loan Terms

func GetLoanTerms(c *gin.Context) {
	var rows []models.LoanTerm
	if err := config.DB.Order("months ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil tenor", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil tenor", rows)
}

type LoanTermInput struct {
	Months int `json:"months" binding:"required"`
}

func CreateLoanTerm(c *gin.Context) {
	var in LoanTermInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Months <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tenor harus lebih dari nol bulan"})
		return
	}

	term := models.LoanTerm{Months: in.Months}
	if err := config.DB.Create(&term).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat tenor", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tenor dibuat", "data": term})
}

func DeleteLoanTerm(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	res := config.DB.Delete(&models.LoanTerm{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus tenor", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tenor tidak ditemukan"})
		return
	}
	c.Status(http.StatusNoContent)
}
