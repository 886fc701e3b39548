package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/service"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parsePeriod membaca ?startDate=&endDate= (YYYY-MM-DD). Default: awal bulan
// berjalan sampai hari ini.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := now

	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		start = t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		end = t
	}
	return start, end, nil
}

// GET /api/admin/dashboard-stats
func GetDashboardStats(c *gin.Context) {
	stats, err := service.NewService(config.DB).Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal mengambil statistik dashboard", "error": err.Error()})
		return
	}
	utils.Success(c, "Statistik dashboard", stats)
}

// GET /api/admin/reports/general-ledger?accountId=&startDate=&endDate=
func GetGeneralLedger(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Query("accountId"))
	if err != nil || accountID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Parameter accountId diperlukan"})
		return
	}

	start, end, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Format tanggal tidak valid, gunakan YYYY-MM-DD"})
		return
	}

	report, err := service.NewService(config.DB).
		GeneralLedger(c.Request.Context(), uint(accountID), start, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Akun tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyusun buku besar", "error": err.Error()})
		return
	}
	utils.Success(c, "Buku besar", report)
}

// GET /api/admin/reports/income-statement?startDate=&endDate=
func GetIncomeStatement(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Format tanggal tidak valid, gunakan YYYY-MM-DD"})
		return
	}

	report, err := service.NewService(config.DB).
		IncomeStatement(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyusun laba rugi", "error": err.Error()})
		return
	}
	utils.Success(c, "Laporan laba rugi", report)
}

// GET /api/admin/reports/balance-sheet?asOf=
func GetBalanceSheet(c *gin.Context) {
	asOf := time.Now().UTC()
	if v := c.Query("asOf"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Format tanggal tidak valid, gunakan YYYY-MM-DD"})
			return
		}
		asOf = t
	}

	report, err := service.NewService(config.DB).BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyusun neraca", "error": err.Error()})
		return
	}
	utils.Success(c, "Neraca", report)
}
