package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Satu baris rencana angsuran hasil perhitungan bunga flat.
type InstallmentPlan struct {
	Number    int             `json:"number"`
	DueDate   time.Time       `json:"due_date"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Amount    decimal.Decimal `json:"amount"`
}

var (
	ErrInvalidLoanAmount = errors.New("jumlah pinjaman harus lebih dari nol")
	ErrInvalidTenor      = errors.New("tenor harus lebih dari nol bulan")
)

// BuildAmortizationSchedule menghitung jadwal angsuran bunga flat:
// bunga per bulan = pokok awal * rate/100, pokok dibagi rata per bulan.
// Sisa pembulatan pokok diserap angsuran terakhir supaya total pokok
// jadwal sama persis dengan pokok pinjaman.
func BuildAmortizationSchedule(amount decimal.Decimal, tenorMonths int, monthlyRate decimal.Decimal, start time.Time) ([]InstallmentPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidLoanAmount
	}
	if tenorMonths <= 0 {
		return nil, ErrInvalidTenor
	}

	months := decimal.NewFromInt(int64(tenorMonths))
	principalPerMonth := amount.Div(months).RoundBank(2)
	interestPerMonth := amount.Mul(monthlyRate).Div(decimal.NewFromInt(100)).RoundBank(2)

	plans := make([]InstallmentPlan, 0, tenorMonths)
	allocated := decimal.Zero
	for i := 1; i <= tenorMonths; i++ {
		principal := principalPerMonth
		if i == tenorMonths {
			principal = amount.Sub(allocated)
		}
		allocated = allocated.Add(principal)

		plans = append(plans, InstallmentPlan{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Principal: principal,
			Interest:  interestPerMonth,
			Amount:    principal.Add(interestPerMonth),
		})
	}
	return plans, nil
}
