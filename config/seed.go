package config

import (
	"github.com/Asep3580/kopkaka/models"
	"github.com/shopspring/decimal"
)

func SeedPermissions() {
	codes := []models.Permission{
		{Code: "viewDashboard", Name: "Akses Dashboard"},
		{Code: "viewApprovals", Name: "Akses Menu Persetujuan"},
		{Code: "viewMembers", Name: "Lihat Data Anggota"},
		{Code: "manageUsers", Name: "Kelola Pengguna"},

		{Code: "viewSavings", Name: "Lihat Simpanan"},
		{Code: "approveSaving", Name: "Approve & Input Simpanan"},

		{Code: "viewLoans", Name: "Lihat Pinjaman"},
		{Code: "approveLoanAccounting", Name: "Persetujuan Pinjaman (Akunting)"},
		{Code: "approveLoanManager", Name: "Persetujuan Pinjaman (Manager)"},

		{Code: "viewAccounting", Name: "Akses Akuntansi & Jurnal"},
		{Code: "viewReports", Name: "Akses Laporan"},
		{Code: "viewSettings", Name: "Akses Pengaturan"},
		{Code: "viewToko", Name: "Akses Toko Koperasi"},
		{Code: "deleteData", Name: "Hapus Data"},
	}
	for _, p := range codes {
		var cnt int64
		DB.Model(&models.Permission{}).Where("code = ?", p.Code).Count(&cnt)
		if cnt == 0 {
			DB.Create(&p)
		}
	}

	// Matriks role -> permission. Admin tidak perlu baris di sini.
	matrix := map[string][]string{
		models.RoleAkunting: {
			"viewDashboard", "viewApprovals", "viewSavings", "approveSaving",
			"viewLoans", "approveLoanAccounting", "viewAccounting", "viewReports",
			"viewToko",
		},
		models.RoleManager: {
			"viewDashboard", "viewApprovals", "viewMembers", "viewSavings",
			"viewLoans", "approveLoanManager", "viewReports",
		},
		models.RoleMember: {
			"viewDashboard",
		},
	}
	for role, perms := range matrix {
		for _, code := range perms {
			var p models.Permission
			if err := DB.Where("code = ?", code).First(&p).Error; err != nil {
				continue
			}
			var cnt int64
			DB.Model(&models.RolePermission{}).
				Where("role = ? AND permission_id = ?", role, p.ID).Count(&cnt)
			if cnt == 0 {
				DB.Create(&models.RolePermission{Role: role, PermissionID: p.ID})
			}
		}
	}
}

// SeedAccounting memastikan tipe akun, akun wajib (Kas, Pendapatan Penjualan),
// tipe simpanan/pinjaman dan pilihan tenor tersedia. Idempotent.
func SeedAccounting() {
	typeIDs := map[string]uint{}
	for _, name := range []string{
		models.AccountAsset, models.AccountLiability, models.AccountEquity,
		models.AccountIncome, models.AccountExpense,
	} {
		var at models.AccountType
		if err := DB.Where("name = ?", name).First(&at).Error; err != nil {
			at = models.AccountType{Name: name}
			DB.Create(&at)
		}
		typeIDs[name] = at.ID
	}

	accounts := []models.Account{
		{AccountNumber: "1-0000", Name: "Aset", AccountTypeID: typeIDs[models.AccountAsset], IsParent: true},
		{AccountNumber: CashAccountNumber, Name: "Kas", AccountTypeID: typeIDs[models.AccountAsset]},
		{AccountNumber: "1-1210", Name: "Piutang Pinjaman Anggota", AccountTypeID: typeIDs[models.AccountAsset]},
		{AccountNumber: "2-0000", Name: "Kewajiban", AccountTypeID: typeIDs[models.AccountLiability], IsParent: true},
		{AccountNumber: "2-1100", Name: "Simpanan Pokok", AccountTypeID: typeIDs[models.AccountLiability]},
		{AccountNumber: "2-1200", Name: "Simpanan Wajib", AccountTypeID: typeIDs[models.AccountLiability]},
		{AccountNumber: "2-1300", Name: "Simpanan Sukarela", AccountTypeID: typeIDs[models.AccountLiability]},
		{AccountNumber: "3-1000", Name: "Modal Koperasi", AccountTypeID: typeIDs[models.AccountEquity]},
		{AccountNumber: SalesIncomeAccountNumber, Name: "Pendapatan Penjualan", AccountTypeID: typeIDs[models.AccountIncome]},
		{AccountNumber: "4-1200", Name: "Pendapatan Jasa Pinjaman", AccountTypeID: typeIDs[models.AccountIncome]},
	}
	for _, a := range accounts {
		var cnt int64
		DB.Model(&models.Account{}).Where("account_number = ?", a.AccountNumber).Count(&cnt)
		if cnt == 0 {
			DB.Create(&a)
		}
	}

	accountID := func(number string) *uint {
		var acc models.Account
		if err := DB.Where("account_number = ?", number).First(&acc).Error; err != nil {
			return nil
		}
		id := acc.ID
		return &id
	}

	savingTypes := []models.SavingType{
		{Name: "Simpanan Pokok", AccountID: accountID("2-1100")},
		{Name: "Simpanan Wajib", AccountID: accountID("2-1200")},
		{Name: "Simpanan Sukarela", AccountID: accountID("2-1300")},
		{Name: "Penarikan Simpanan Sukarela", IsWithdrawal: true, AccountID: accountID("2-1300")},
	}
	for _, st := range savingTypes {
		var cnt int64
		DB.Model(&models.SavingType{}).Where("name = ?", st.Name).Count(&cnt)
		if cnt == 0 {
			DB.Create(&st)
		}
	}

	loanTypes := []models.LoanType{
		{Name: "Pinjaman Reguler", InterestRate: decimal.NewFromFloat(1.5), AccountID: accountID("1-1210")},
		{Name: "Pinjaman Usaha", InterestRate: decimal.NewFromFloat(1.0), AccountID: accountID("1-1210")},
	}
	for _, lt := range loanTypes {
		var cnt int64
		DB.Model(&models.LoanType{}).Where("name = ?", lt.Name).Count(&cnt)
		if cnt == 0 {
			DB.Create(&lt)
		}
	}

	for _, months := range []int{6, 12, 18, 24, 36} {
		var cnt int64
		DB.Model(&models.LoanTerm{}).Where("months = ?", months).Count(&cnt)
		if cnt == 0 {
			DB.Create(&models.LoanTerm{Months: months})
		}
	}
}
