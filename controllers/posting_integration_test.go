package controllers

// Test transaksional di file ini butuh Postgres sungguhan (row lock FOR
// UPDATE tidak bisa dipalsukan). Jalankan dengan:
//
//	INTEGRATION_TESTS=1 TEST_DATABASE_URL=postgres://... go test ./controllers/

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 dan TEST_DATABASE_URL untuk menjalankan test ini")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL belum diset")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.AccountType{},
		&models.Account{},
		&models.Journal{},
		&models.JournalEntry{},
		&models.SavingType{},
		&models.Saving{},
		&models.LoanType{},
		&models.LoanTerm{},
		&models.Loan{},
		&models.LoanInstallment{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
	))

	tables := []string{
		"journal_entries", "journals",
		"loan_installments", "loans", "loan_terms", "loan_types",
		"savings", "saving_types",
		"sale_items", "sales", "products",
		"accounts", "account_types", "members",
	}
	for _, tbl := range tables {
		require.NoError(t, db.Exec("TRUNCATE TABLE "+tbl+" RESTART IDENTITY CASCADE").Error)
	}

	config.DB = db
	config.CashAccountNumber = "1-1110"
	return db
}

type fixture struct {
	member     models.Member
	cash       models.Account
	savingAcc  models.Account
	receivable models.Account
	savingType models.SavingType
	loanType   models.LoanType
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	assetType := models.AccountType{Name: models.AccountAsset}
	require.NoError(t, db.Create(&assetType).Error)
	liabilityType := models.AccountType{Name: models.AccountLiability}
	require.NoError(t, db.Create(&liabilityType).Error)

	fx := fixture{
		cash:       models.Account{AccountNumber: "1-1110", Name: "Kas", AccountTypeID: assetType.ID},
		savingAcc:  models.Account{AccountNumber: "2-1100", Name: "Simpanan Wajib", AccountTypeID: liabilityType.ID},
		receivable: models.Account{AccountNumber: "1-1210", Name: "Piutang Pinjaman Anggota", AccountTypeID: assetType.ID},
	}
	require.NoError(t, db.Create(&fx.cash).Error)
	require.NoError(t, db.Create(&fx.savingAcc).Error)
	require.NoError(t, db.Create(&fx.receivable).Error)

	fx.member = models.Member{
		CooperativeNumber: "KOP-2025-000001",
		Name:              "Budi Santoso",
		Email:             "budi@example.com",
		PasswordHash:      "x",
		Role:              models.RoleMember,
		Status:            models.MemberActive,
	}
	require.NoError(t, db.Create(&fx.member).Error)

	fx.savingType = models.SavingType{Name: "Simpanan Wajib", AccountID: &fx.savingAcc.ID}
	require.NoError(t, db.Create(&fx.savingType).Error)

	fx.loanType = models.LoanType{
		Name:         "Pinjaman Reguler",
		InterestRate: decimal.NewFromFloat(1.5),
		AccountID:    &fx.receivable.ID,
	}
	require.NoError(t, db.Create(&fx.loanType).Error)

	return fx
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/savings/:id/status", UpdateSavingStatus)
	r.POST("/savings/bulk-upload", UploadBulkSavings)
	r.PUT("/loans/:id/status", UpdateLoanStatus)
	r.POST("/loans/payment", RecordLoanPayment)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSavingApprovalPostsJournalOnce(t *testing.T) {
	db := setupIntegrationDB(t)
	fx := seedFixture(t, db)
	r := testRouter()

	saving := models.Saving{
		MemberID:     fx.member.ID,
		SavingTypeID: fx.savingType.ID,
		Amount:       decimal.NewFromInt(100_000),
		Date:         time.Now().UTC(),
		Status:       models.SavingPending,
	}
	require.NoError(t, db.Create(&saving).Error)

	url := fmt.Sprintf("/savings/%d/status", saving.ID)
	w := doJSON(t, r, http.MethodPut, url, `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Approve ulang tidak boleh bikin jurnal kedua.
	w = doJSON(t, r, http.MethodPut, url, `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var journals int64
	require.NoError(t, db.Model(&models.Journal{}).Count(&journals).Error)
	assert.Equal(t, int64(1), journals)

	var updated models.Saving
	require.NoError(t, db.First(&updated, saving.ID).Error)
	assert.Equal(t, models.SavingApproved, updated.Status)
	require.NotNil(t, updated.JournalID)

	// Setoran: debit di kas, kredit di akun simpanan.
	var entries []models.JournalEntry
	require.NoError(t, db.Where("journal_id = ?", *updated.JournalID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, fx.cash.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(saving.Amount))
	assert.Equal(t, fx.savingAcc.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(saving.Amount))
}

func TestSavingApprovalFailsWithoutAccountMapping(t *testing.T) {
	db := setupIntegrationDB(t)
	fx := seedFixture(t, db)
	r := testRouter()

	unmapped := models.SavingType{Name: "Simpanan Sukarela"}
	require.NoError(t, db.Create(&unmapped).Error)

	saving := models.Saving{
		MemberID:     fx.member.ID,
		SavingTypeID: unmapped.ID,
		Amount:       decimal.NewFromInt(50_000),
		Date:         time.Now().UTC(),
		Status:       models.SavingPending,
	}
	require.NoError(t, db.Create(&saving).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/savings/%d/status", saving.ID), `{"status":"Approved"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var updated models.Saving
	require.NoError(t, db.First(&updated, saving.ID).Error)
	assert.Equal(t, models.SavingPending, updated.Status)

	var journals int64
	require.NoError(t, db.Model(&models.Journal{}).Count(&journals).Error)
	assert.Zero(t, journals)
}

func bulkUploadRequest(t *testing.T, rows [][]interface{}) *http.Request {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{service.ColCooperativeNumber, service.ColSavingType, service.ColAmount}
	for col, h := range headers {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, name, h))
	}
	for i, row := range rows {
		for col, v := range row {
			name, err := excelize.CoordinatesToCellName(col+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}
	var wb bytes.Buffer
	require.NoError(t, f.Write(&wb))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("savingsFile", "bulk.xlsx")
	require.NoError(t, err)
	_, err = part.Write(wb.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/savings/bulk-upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestBulkUploadIsAllOrNothing(t *testing.T) {
	db := setupIntegrationDB(t)
	fx := seedFixture(t, db)
	r := testRouter()

	// Baris kedua menunjuk anggota yang tidak ada: seluruh batch gagal.
	req := bulkUploadRequest(t, [][]interface{}{
		{fx.member.CooperativeNumber, fx.savingType.Name, "100000"},
		{"KOP-2025-999999", fx.savingType.Name, "200000"},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "KOP-2025-999999")

	var savings, journals int64
	require.NoError(t, db.Model(&models.Saving{}).Count(&savings).Error)
	require.NoError(t, db.Model(&models.Journal{}).Count(&journals).Error)
	assert.Zero(t, savings)
	assert.Zero(t, journals)

	// Batch yang valid masuk semua: satu header jurnal untuk seluruh batch.
	req = bulkUploadRequest(t, [][]interface{}{
		{fx.member.CooperativeNumber, fx.savingType.Name, "100000"},
		{fx.member.CooperativeNumber, fx.savingType.Name, "200000"},
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, db.Model(&models.Saving{}).Count(&savings).Error)
	require.NoError(t, db.Model(&models.Journal{}).Count(&journals).Error)
	assert.Equal(t, int64(2), savings)
	assert.Equal(t, int64(1), journals)

	var entries int64
	require.NoError(t, db.Model(&models.JournalEntry{}).Count(&entries).Error)
	assert.Equal(t, int64(4), entries)
}

func TestLoanLifecycle(t *testing.T) {
	db := setupIntegrationDB(t)
	fx := seedFixture(t, db)
	r := testRouter()

	loan := models.Loan{
		MemberID:    fx.member.ID,
		LoanTypeID:  fx.loanType.ID,
		Amount:      decimal.NewFromInt(1_200_000),
		TenorMonths: 3,
		Date:        time.Now().UTC(),
		Status:      models.LoanPending,
	}
	require.NoError(t, db.Create(&loan).Error)

	url := fmt.Sprintf("/loans/%d/status", loan.ID)

	// Final approve langsung dari Pending harus ditolak.
	w := doJSON(t, r, http.MethodPut, url, `{"status":"Approved"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, url, `{"status":"Approved by Accounting"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut, url, `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var approved models.Loan
	require.NoError(t, db.Preload("Installments").First(&approved, loan.ID).Error)
	assert.Equal(t, models.LoanApproved, approved.Status)
	require.NotNil(t, approved.JournalID)
	require.Len(t, approved.Installments, 3)

	// Jurnal pencairan: debit piutang, kredit kas.
	var entries []models.JournalEntry
	require.NoError(t, db.Where("journal_id = ?", *approved.JournalID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, fx.receivable.ID, entries[0].AccountID)
	assert.Equal(t, fx.cash.ID, entries[1].AccountID)

	// Bayar semua angsuran; pembayaran terakhir membuat status Lunas.
	for _, inst := range approved.Installments {
		body := fmt.Sprintf(`{"loanId":%d,"installmentNumber":%d}`, loan.ID, inst.InstallmentNumber)
		w = doJSON(t, r, http.MethodPost, "/loans/payment", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Bayar ulang angsuran yang sudah lunas harus gagal.
	w = doJSON(t, r, http.MethodPost, "/loans/payment",
		fmt.Sprintf(`{"loanId":%d,"installmentNumber":1}`, loan.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var settled models.Loan
	require.NoError(t, db.First(&settled, loan.ID).Error)
	assert.Equal(t, models.LoanPaidOff, settled.Status)
}
