package controllers

import (
	"errors"
	"fmt"
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

// ===== ADMIN: daftar simpanan dengan filter & pagination
// ?startDate=&endDate=&search=&savingTypeId=&status=&page=&limit=
func GetSavings(c *gin.Context) {
	q := config.DB.Model(&models.Saving{}).
		Joins("LEFT JOIN members m ON m.id = savings.member_id").
		Preload("Member").Preload("SavingType").
		Order("savings.date DESC")

	if v := c.Query("startDate"); v != "" {
		q = q.Where("savings.date::date >= ?", v)
	}
	if v := c.Query("endDate"); v != "" {
		q = q.Where("savings.date::date <= ?", v)
	}
	if v := c.Query("search"); v != "" {
		q = q.Where("m.name ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("savingTypeId"); v != "" {
		q = q.Where("savings.saving_type_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("savings.status = ?", v)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data simpanan", "error": err.Error()})
		return
	}

	var rows []models.Saving
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data simpanan", "error": err.Error()})
		return
	}
	utils.Paginated(c, rows, total, page, limit)
}

func GetSavingsByMember(c *gin.Context) {
	memberID, _ := strconv.Atoi(c.Param("memberId"))

	var rows []models.Saving
	if err := config.DB.Preload("SavingType").
		Where("member_id = ?", memberID).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data simpanan anggota", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil simpanan anggota", rows)
}

type SavingInput struct {
	MemberID     uint            `json:"memberId" binding:"required"`
	SavingTypeID uint            `json:"savingTypeId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
}

// Admin input simpanan manual; selalu dibuat Pending.
func CreateSaving(c *gin.Context) {
	var in SavingInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data tidak lengkap: memberId, savingTypeId dan amount diperlukan"})
		return
	}

	saving := models.Saving{
		MemberID:     in.MemberID,
		SavingTypeID: in.SavingTypeID,
		Amount:       in.Amount,
		Date:         time.Now().UTC(),
		Status:       models.SavingPending,
		Description:  in.Description,
	}
	if err := config.DB.Create(&saving).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat data simpanan baru", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Simpanan dibuat", "data": saving})
}

type SavingStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/admin/savings/:id/status - transisi status + posting jurnal otomatis.
// Jurnal hanya dibuat saat transisi MENJADI Approved dari status lain; approve
// ulang record yang sudah Approved tidak boleh double-post.
func UpdateSavingStatus(c *gin.Context) {
	id := c.Param("id")

	var in SavingStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}
	switch in.Status {
	case models.SavingApproved, models.SavingRejected, models.SavingPending:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status tidak valid"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Lock record-nya supaya dua approve bersamaan tidak double-post.
		var saving models.Saving
		if err := tx.Clauses(clauseUpdateLock()).
			Preload("SavingType").Preload("Member").
			First(&saving, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if in.Status == models.SavingApproved && saving.Status != models.SavingApproved {
			if saving.SavingType.AccountID == nil {
				return fmt.Errorf("%w: tipe simpanan %q, lakukan maping di Pengaturan", errUnmappedAccount, saving.SavingType.Name)
			}

			cash, err := resolveCashAccount(tx)
			if err != nil {
				return err
			}

			debitID, creditID := savingJournalAccounts(saving.SavingType.IsWithdrawal, cash.ID, *saving.SavingType.AccountID)
			description := savingJournalDescription(saving.SavingType.IsWithdrawal, saving.SavingType.Name, saving.Member.Name)

			journalID, err := postJournalPair(tx, time.Now().UTC(), description, debitID, creditID, saving.Amount)
			if err != nil {
				return err
			}

			return tx.Model(&models.Saving{}).
				Where("id = ?", saving.ID).
				Updates(map[string]any{
					"status":     models.SavingApproved,
					"journal_id": journalID,
				}).Error
		}

		// Transisi non-posting: cukup update kolom status.
		return tx.Model(&models.Saving{}).
			Where("id = ?", saving.ID).
			Update("status", in.Status).Error
	})

	switch {
	case err == nil:
		var updated models.Saving
		config.DB.Preload("Member").Preload("SavingType").First(&updated, id)
		utils.Success(c, "Status simpanan diperbarui", updated)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Simpanan tidak ditemukan"})
	case errors.Is(err, errUnmappedAccount), errors.Is(err, errMissingCashAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Terjadi kesalahan internal saat memperbarui status simpanan", "error": err.Error()})
	}
}

// PUT /api/admin/savings/:id - edit data pokok (bukan status).
func UpdateSaving(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var in SavingInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data tidak lengkap: memberId, savingTypeId dan amount diperlukan"})
		return
	}

	res := config.DB.Model(&models.Saving{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"member_id":      in.MemberID,
			"saving_type_id": in.SavingTypeID,
			"amount":         in.Amount,
			"description":    in.Description,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui data simpanan", "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Simpanan tidak ditemukan"})
		return
	}

	var updated models.Saving
	config.DB.Preload("Member").Preload("SavingType").First(&updated, id)
	utils.Success(c, "Simpanan diperbarui", updated)
}

// DELETE /api/admin/savings/:id - hapus simpanan beserta jurnal terkaitnya.
func DeleteSaving(c *gin.Context) {
	id := c.Param("id")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var saving models.Saving
		if err := tx.Clauses(clauseUpdateLock()).First(&saving, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if err := tx.Delete(&models.Saving{}, saving.ID).Error; err != nil {
			return err
		}
		if saving.JournalID != nil {
			return deleteJournalCascade(tx, *saving.JournalID)
		}
		return nil
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Simpanan tidak ditemukan"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus data simpanan", "error": err.Error()})
	}
}

// ===== MEMBER: simpanan milik sendiri

func GetMySavings(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var rows []models.Saving
	if err := config.DB.Preload("SavingType").
		Where("member_id = ?", uid).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data simpanan", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil simpanan", rows)
}

type SavingApplicationInput struct {
	SavingTypeID uint            `form:"savingTypeId" binding:"required"`
	Amount       decimal.Decimal `form:"amount" binding:"required"`
	Description  string          `form:"description"`
}

// Anggota mengajukan setoran (multipart, bukti transfer opsional).
// Penyimpanan file di luar scope; hanya nama file yang dicatat.
func CreateSavingApplication(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in SavingApplicationInput
	if err := c.ShouldBind(&in); err != nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data pengajuan tidak lengkap"})
		return
	}

	proofPath := ""
	if file, err := c.FormFile("proof"); err == nil {
		proofPath = file.Filename
	}

	saving := models.Saving{
		MemberID:     uid,
		SavingTypeID: in.SavingTypeID,
		Amount:       in.Amount,
		Date:         time.Now().UTC(),
		Status:       models.SavingPending,
		Description:  in.Description,
		ProofPath:    proofPath,
	}
	if err := config.DB.Create(&saving).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat pengajuan simpanan", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pengajuan simpanan terkirim", "data": saving})
}

type WithdrawalInput struct {
	SavingTypeID uint            `json:"savingTypeId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
}

// Anggota mengajukan penarikan simpanan sukarela. Saldo dicek terhadap
// setoran-penarikan yang sudah Approved; pengajuan tetap Pending sampai
// disetujui (posting jurnal terjadi di approve).
func CreateWithdrawalApplication(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in WithdrawalInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data pengajuan tidak lengkap"})
		return
	}

	var st models.SavingType
	if err := config.DB.First(&st, in.SavingTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tipe simpanan tidak ditemukan"})
		return
	}
	if !st.IsWithdrawal {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tipe simpanan ini bukan tipe penarikan"})
		return
	}

	balance, err := voluntaryBalance(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung saldo", "error": err.Error()})
		return
	}
	if in.Amount.GreaterThan(balance) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Saldo simpanan sukarela tidak cukup"})
		return
	}

	saving := models.Saving{
		MemberID:     uid,
		SavingTypeID: in.SavingTypeID,
		Amount:       in.Amount,
		Date:         time.Now().UTC(),
		Status:       models.SavingPending,
		Description:  in.Description,
	}
	if err := config.DB.Create(&saving).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat pengajuan penarikan", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pengajuan penarikan terkirim", "data": saving})
}

func GetVoluntaryBalance(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	balance, err := voluntaryBalance(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung saldo", "error": err.Error()})
		return
	}
	utils.Success(c, "Saldo simpanan sukarela", gin.H{"balance": balance})
}

// Saldo sukarela = setoran Approved - penarikan Approved pada tipe sukarela.
func voluntaryBalance(memberID uint) (decimal.Decimal, error) {
	var v decimal.NullDecimal
	err := config.DB.Model(&models.Saving{}).
		Joins("JOIN saving_types st ON st.id = savings.saving_type_id").
		Where("savings.member_id = ? AND savings.status = ?", memberID, models.SavingApproved).
		Where("st.name = ? OR st.is_withdrawal", "Simpanan Sukarela").
		Select("COALESCE(SUM(CASE WHEN st.is_withdrawal THEN -savings.amount ELSE savings.amount END), 0)").
		Scan(&v).Error
	return v.Decimal, err
}
