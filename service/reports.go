package service

import (
	"context"
	"time"

	"github.com/Asep3580/kopkaka/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ===== DTO umum =====

type DashboardStats struct {
	TotalMembers   int64           `json:"total_members"`
	PendingMembers int64           `json:"pending_members"`
	TotalSavings   decimal.Decimal `json:"total_savings"`
	PendingSavings int64           `json:"pending_savings"`
	ActiveLoans    int64           `json:"active_loans"`
	PendingLoans   int64           `json:"pending_loans"`
	TotalLoaned    decimal.Decimal `json:"total_loaned"`
}

type LedgerRow struct {
	JournalID   uint            `json:"journal_id"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type GeneralLedgerReport struct {
	AccountID     uint            `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Rows          []LedgerRow     `json:"rows"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

type AccountTotalRow struct {
	AccountID     uint            `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Total         decimal.Decimal `json:"total"`
}

type IncomeStatement struct {
	Income       []AccountTotalRow `json:"income"`
	Expense      []AccountTotalRow `json:"expense"`
	TotalIncome  decimal.Decimal   `json:"total_income"`
	TotalExpense decimal.Decimal   `json:"total_expense"`
	Net          decimal.Decimal   `json:"net"`
}

type BalanceSheetSummary struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// ===== Service =====

type Service interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	GeneralLedger(ctx context.Context, accountID uint, start, end time.Time) (GeneralLedgerReport, error)
	IncomeStatement(ctx context.Context, start, end time.Time) (IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheetSummary, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

// ===== Implementations =====

func (s *service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Member{}).
		Where("role = ? AND status = ?", models.RoleMember, models.MemberActive).
		Count(&out.TotalMembers).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Member{}).
		Where("role = ? AND status = ?", models.RoleMember, models.MemberPending).
		Count(&out.PendingMembers).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Saving{}).
		Where("status = ?", models.SavingPending).
		Count(&out.PendingSavings).Error; err != nil {
		return out, err
	}

	// Saldo simpanan = setoran approved - penarikan approved.
	var totalSavings decimal.NullDecimal
	if err := db.Model(&models.Saving{}).
		Joins("JOIN saving_types st ON st.id = savings.saving_type_id").
		Where("savings.status = ?", models.SavingApproved).
		Select("COALESCE(SUM(CASE WHEN st.is_withdrawal THEN -savings.amount ELSE savings.amount END), 0)").
		Scan(&totalSavings).Error; err != nil {
		return out, err
	}
	out.TotalSavings = totalSavings.Decimal

	if err := db.Model(&models.Loan{}).
		Where("status = ?", models.LoanApproved).
		Count(&out.ActiveLoans).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Loan{}).
		Where("status IN ?", []string{models.LoanPending, models.LoanApprovedAccounting}).
		Count(&out.PendingLoans).Error; err != nil {
		return out, err
	}

	var totalLoaned decimal.NullDecimal
	if err := db.Model(&models.Loan{}).
		Where("status IN ?", []string{models.LoanApproved, models.LoanPaidOff}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalLoaned).Error; err != nil {
		return out, err
	}
	out.TotalLoaned = totalLoaned.Decimal

	return out, nil
}

func (s *service) GeneralLedger(ctx context.Context, accountID uint, start, end time.Time) (GeneralLedgerReport, error) {
	var report GeneralLedgerReport

	var acc models.Account
	if err := s.db.WithContext(ctx).First(&acc, accountID).Error; err != nil {
		return report, err
	}
	report.AccountID = acc.ID
	report.AccountNumber = acc.AccountNumber
	report.AccountName = acc.Name

	var rows []LedgerRow
	if err := s.db.WithContext(ctx).
		Table("journal_entries je").
		Select(`je.journal_id, j.entry_date, j.description, je.debit, je.credit`).
		Joins("JOIN journals j ON j.id = je.journal_id").
		Where("je.account_id = ?", accountID).
		Where("j.entry_date >= ? AND j.entry_date < ?", start, end.AddDate(0, 0, 1)).
		Order("j.entry_date ASC, je.journal_id ASC, je.id ASC").
		Scan(&rows).Error; err != nil {
		return report, err
	}

	// Saldo berjalan mengikuti saldo normal tipe akunnya.
	debitNormal := true
	var typeName string
	_ = s.db.WithContext(ctx).
		Table("account_types").Select("name").
		Where("id = ?", acc.AccountTypeID).Scan(&typeName)
	switch typeName {
	case models.AccountLiability, models.AccountEquity, models.AccountIncome:
		debitNormal = false
	}

	balance := decimal.Zero
	for i := range rows {
		if debitNormal {
			balance = balance.Add(rows[i].Debit).Sub(rows[i].Credit)
		} else {
			balance = balance.Add(rows[i].Credit).Sub(rows[i].Debit)
		}
		rows[i].Balance = balance
	}
	report.Rows = rows
	report.EndingBalance = balance
	return report, nil
}

func (s *service) IncomeStatement(ctx context.Context, start, end time.Time) (IncomeStatement, error) {
	var out IncomeStatement

	query := func(typeName, expr string) ([]AccountTotalRow, error) {
		var rows []AccountTotalRow
		err := s.db.WithContext(ctx).
			Table("journal_entries je").
			Select(`a.id AS account_id, a.account_number, a.name AS account_name, `+expr+` AS total`).
			Joins("JOIN journals j ON j.id = je.journal_id").
			Joins("JOIN accounts a ON a.id = je.account_id").
			Joins("JOIN account_types at ON at.id = a.account_type_id").
			Where("at.name = ?", typeName).
			Where("j.entry_date >= ? AND j.entry_date < ?", start, end.AddDate(0, 0, 1)).
			Group("a.id, a.account_number, a.name").
			Having(expr + " <> 0").
			Order("a.account_number ASC").
			Scan(&rows).Error
		return rows, err
	}

	income, err := query(models.AccountIncome, "SUM(je.credit - je.debit)")
	if err != nil {
		return out, err
	}
	expense, err := query(models.AccountExpense, "SUM(je.debit - je.credit)")
	if err != nil {
		return out, err
	}

	out.Income = income
	out.Expense = expense
	for _, r := range income {
		out.TotalIncome = out.TotalIncome.Add(r.Total)
	}
	for _, r := range expense {
		out.TotalExpense = out.TotalExpense.Add(r.Total)
	}
	out.Net = out.TotalIncome.Sub(out.TotalExpense)
	return out, nil
}

func (s *service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheetSummary, error) {
	var out BalanceSheetSummary

	total := func(typeName, expr string) (decimal.Decimal, error) {
		var v decimal.NullDecimal
		err := s.db.WithContext(ctx).
			Table("journal_entries je").
			Select("COALESCE(" + expr + ", 0)").
			Joins("JOIN journals j ON j.id = je.journal_id").
			Joins("JOIN accounts a ON a.id = je.account_id").
			Joins("JOIN account_types at ON at.id = a.account_type_id").
			Where("at.name = ?", typeName).
			Where("j.entry_date < ?", asOf.AddDate(0, 0, 1)).
			Scan(&v).Error
		return v.Decimal, err
	}

	var err error
	if out.TotalAssets, err = total(models.AccountAsset, "SUM(je.debit - je.credit)"); err != nil {
		return out, err
	}
	if out.TotalLiabilities, err = total(models.AccountLiability, "SUM(je.credit - je.debit)"); err != nil {
		return out, err
	}
	if out.TotalEquity, err = total(models.AccountEquity, "SUM(je.credit - je.debit)"); err != nil {
		return out, err
	}
	return out, nil
}
