package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/service"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ===== ADMIN

func GetLoans(c *gin.Context) {
	q := config.DB.Model(&models.Loan{}).
		Preload("Member").Preload("LoanType").
		Order("loans.date DESC")

	if v := c.Query("status"); v != "" {
		q = q.Where("loans.status = ?", v)
	}
	if v := c.Query("search"); v != "" {
		q = q.Joins("LEFT JOIN members m ON m.id = loans.member_id").
			Where("m.name ILIKE ?", "%"+v+"%")
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
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data pinjaman", "error": err.Error()})
		return
	}
	var rows []models.Loan
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data pinjaman", "error": err.Error()})
		return
	}
	utils.Paginated(c, rows, total, page, limit)
}

// Pinjaman yang masih menunggu salah satu tahap persetujuan.
func GetPendingLoans(c *gin.Context) {
	var rows []models.Loan
	if err := config.DB.Preload("Member").Preload("LoanType").
		Where("status IN ?", []string{models.LoanPending, models.LoanApprovedAccounting}).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data pinjaman", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil pinjaman pending", rows)
}

func GetLoanDetails(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var loan models.Loan
	if err := config.DB.Preload("Member").Preload("LoanType").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Pinjaman tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil detail pinjaman", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil detail pinjaman", loan)
}

type LoanStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/admin/loans/:id/status - persetujuan bertahap:
// Pending -> Approved by Accounting (akunting) -> Approved (manager).
// Approval final membuat jadwal angsuran + jurnal pencairan dalam satu
// transaksi; tipe pinjaman tanpa mapping akun menggagalkan semuanya.
func UpdateLoanStatus(c *gin.Context) {
	id := c.Param("id")

	var in LoanStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}
	switch in.Status {
	case models.LoanApprovedAccounting, models.LoanApproved, models.LoanRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status tidak valid"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.Clauses(clauseUpdateLock()).
			Preload("LoanType").Preload("Member").
			First(&loan, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		switch in.Status {
		case models.LoanApprovedAccounting:
			if loan.Status != models.LoanPending {
				return errBadStatusTransition
			}
			return tx.Model(&models.Loan{}).
				Where("id = ? AND status = ?", loan.ID, models.LoanPending).
				Update("status", models.LoanApprovedAccounting).Error

		case models.LoanRejected:
			if loan.Status != models.LoanPending && loan.Status != models.LoanApprovedAccounting {
				return errBadStatusTransition
			}
			return tx.Model(&models.Loan{}).
				Where("id = ?", loan.ID).
				Update("status", models.LoanRejected).Error

		case models.LoanApproved:
			if loan.Status == models.LoanApproved {
				return errAlreadyProcessed
			}
			if loan.Status != models.LoanApprovedAccounting {
				return errBadStatusTransition
			}
			if loan.LoanType.AccountID == nil {
				return fmt.Errorf("%w: tipe pinjaman %q, lakukan maping di Pengaturan", errUnmappedAccount, loan.LoanType.Name)
			}

			cash, err := resolveCashAccount(tx)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			plans, err := service.BuildAmortizationSchedule(loan.Amount, loan.TenorMonths, loan.LoanType.InterestRate, now)
			if err != nil {
				return err
			}
			installments := make([]models.LoanInstallment, 0, len(plans))
			for _, p := range plans {
				installments = append(installments, models.LoanInstallment{
					LoanID:            loan.ID,
					InstallmentNumber: p.Number,
					DueDate:           p.DueDate,
					Principal:         p.Principal,
					Interest:          p.Interest,
					Amount:            p.Amount,
				})
			}
			if err := tx.Create(&installments).Error; err != nil {
				return err
			}

			// Pencairan: debit piutang pinjaman, kredit kas.
			description := fmt.Sprintf("Pencairan %s a/n %s", loan.LoanType.Name, loan.Member.Name)
			journalID, err := postJournalPair(tx, now, description, *loan.LoanType.AccountID, cash.ID, loan.Amount)
			if err != nil {
				return err
			}

			return tx.Model(&models.Loan{}).
				Where("id = ? AND status = ?", loan.ID, models.LoanApprovedAccounting).
				Updates(map[string]any{
					"status":     models.LoanApproved,
					"journal_id": journalID,
				}).Error
		}
		return nil
	})

	switch {
	case err == nil:
		var updated models.Loan
		config.DB.Preload("Member").Preload("LoanType").First(&updated, id)
		utils.Success(c, "Status pinjaman diperbarui", updated)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pinjaman tidak ditemukan"})
	case errors.Is(err, errBadStatusTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Transisi status tidak diizinkan dari status saat ini"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "Pinjaman sudah disetujui"})
	case errors.Is(err, errUnmappedAccount), errors.Is(err, errMissingCashAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui status pinjaman", "error": err.Error()})
	}
}

type LoanPaymentInput struct {
	LoanID            uint `json:"loanId" binding:"required"`
	InstallmentNumber int  `json:"installmentNumber" binding:"required"`
}

// POST /api/admin/loans/payment - catat pembayaran satu angsuran, posting
// jurnalnya (debit kas, kredit piutang), lalu evaluasi ulang: kalau semua
// angsuran lunas, status pinjaman jadi Lunas.
func RecordLoanPayment(c *gin.Context) {
	var in LoanPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload tidak valid"})
		return
	}

	var loanStatus string
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.Clauses(clauseUpdateLock()).
			Preload("LoanType").Preload("Member").
			First(&loan, in.LoanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if loan.Status != models.LoanApproved {
			return errBadStatusTransition
		}
		if loan.LoanType.AccountID == nil {
			return fmt.Errorf("%w: tipe pinjaman %q", errUnmappedAccount, loan.LoanType.Name)
		}

		var inst models.LoanInstallment
		if err := tx.Clauses(clauseUpdateLock()).
			Where("loan_id = ? AND installment_number = ? AND is_paid = false", loan.ID, in.InstallmentNumber).
			First(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errInstallmentNotFound
			}
			return err
		}

		cash, err := resolveCashAccount(tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		description := fmt.Sprintf("Angsuran ke-%d %s a/n %s", inst.InstallmentNumber, loan.LoanType.Name, loan.Member.Name)
		journalID, err := postJournalPair(tx, now, description, cash.ID, *loan.LoanType.AccountID, inst.Amount)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.LoanInstallment{}).
			Where("id = ? AND is_paid = false", inst.ID).
			Updates(map[string]any{
				"is_paid":    true,
				"paid_date":  now,
				"journal_id": journalID,
			}).Error; err != nil {
			return err
		}

		var unpaid int64
		if err := tx.Model(&models.LoanInstallment{}).
			Where("loan_id = ? AND is_paid = false", loan.ID).
			Count(&unpaid).Error; err != nil {
			return err
		}

		loanStatus = loan.Status
		if unpaid == 0 {
			if err := tx.Model(&models.Loan{}).
				Where("id = ?", loan.ID).
				Update("status", models.LoanPaidOff).Error; err != nil {
				return err
			}
			loanStatus = models.LoanPaidOff
		}
		return nil
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Pembayaran angsuran dicatat", "loanStatus": loanStatus})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pinjaman tidak ditemukan"})
	case errors.Is(err, errInstallmentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Angsuran tidak ditemukan atau sudah dibayar"})
	case errors.Is(err, errBadStatusTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pinjaman belum dalam status Approved"})
	case errors.Is(err, errUnmappedAccount), errors.Is(err, errMissingCashAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mencatat pembayaran", "error": err.Error()})
	}
}

// DELETE /api/admin/loans/:id - hapus pinjaman, angsuran dan semua jurnal
// terkait (pencairan + pembayaran angsuran).
func DeleteLoan(c *gin.Context) {
	id := c.Param("id")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.Clauses(clauseUpdateLock()).
			Preload("Installments").
			First(&loan, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		journalIDs := []uint{}
		if loan.JournalID != nil {
			journalIDs = append(journalIDs, *loan.JournalID)
		}
		for _, inst := range loan.Installments {
			if inst.JournalID != nil {
				journalIDs = append(journalIDs, *inst.JournalID)
			}
		}

		if err := tx.Where("loan_id = ?", loan.ID).Delete(&models.LoanInstallment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Loan{}, loan.ID).Error; err != nil {
			return err
		}
		for _, jid := range journalIDs {
			if err := deleteJournalCascade(tx, jid); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pinjaman tidak ditemukan"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghapus pinjaman", "error": err.Error()})
	}
}

// ===== MEMBER

type LoanApplicationInput struct {
	LoanTypeID  uint            `json:"loanTypeId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TenorMonths int             `json:"tenorMonths" binding:"required"`
	Purpose     string          `json:"purpose"`
}

func CreateLoanApplication(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in LoanApplicationInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data pengajuan tidak lengkap"})
		return
	}

	var term models.LoanTerm
	if err := config.DB.Where("months = ?", in.TenorMonths).First(&term).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tenor tidak tersedia"})
		return
	}

	// Satu pinjaman berjalan per anggota.
	var active int64
	config.DB.Model(&models.Loan{}).
		Where("member_id = ? AND status IN ?", uid,
			[]string{models.LoanPending, models.LoanApprovedAccounting, models.LoanApproved}).
		Count(&active)
	if active > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Anda masih punya pinjaman berjalan"})
		return
	}

	loan := models.Loan{
		MemberID:    uid,
		LoanTypeID:  in.LoanTypeID,
		Amount:      in.Amount,
		TenorMonths: in.TenorMonths,
		Purpose:     in.Purpose,
		Date:        time.Now().UTC(),
		Status:      models.LoanPending,
	}
	if err := config.DB.Create(&loan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal membuat pengajuan pinjaman", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pengajuan pinjaman terkirim", "data": loan})
}

func GetMyLoans(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var rows []models.Loan
	if err := config.DB.Preload("LoanType").
		Where("member_id = ?", uid).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil data pinjaman", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil pinjaman", rows)
}

func GetMyLoanDetails(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var loan models.Loan
	if err := config.DB.Preload("LoanType").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		Where("id = ? AND member_id = ?", id, uid).
		First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Pinjaman tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil detail pinjaman", "error": err.Error()})
		return
	}
	utils.Success(c, "Berhasil mengambil detail pinjaman", loan)
}

// Pinjaman Approved milik anggota beserta angsuran berikutnya yang belum
// dibayar, untuk form pembayaran.
func GetActiveLoanForPayment(c *gin.Context) {
	uid, err := currentMemberID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var loan models.Loan
	if err := config.DB.Preload("LoanType").
		Where("member_id = ? AND status = ?", uid, models.LoanApproved).
		First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tidak ada pinjaman aktif"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil pinjaman aktif", "error": err.Error()})
		return
	}

	var next models.LoanInstallment
	if err := config.DB.
		Where("loan_id = ? AND is_paid = false", loan.ID).
		Order("installment_number ASC").
		First(&next).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil angsuran", "error": err.Error()})
		return
	}

	utils.Success(c, "Pinjaman aktif", gin.H{"loan": loan, "next_installment": next})
}
