package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAmortizationSchedule(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(12_000_000)
	rate := decimal.NewFromFloat(1.5) // 1.5% per bulan

	plans, err := BuildAmortizationSchedule(amount, 12, rate, start)
	require.NoError(t, err)
	require.Len(t, plans, 12)

	interest := decimal.NewFromInt(180_000) // 12jt * 1.5%
	totalPrincipal := decimal.Zero
	for i, p := range plans {
		assert.Equal(t, i+1, p.Number)
		assert.True(t, p.Interest.Equal(interest), "bunga flat harus sama tiap bulan")
		assert.True(t, p.Amount.Equal(p.Principal.Add(p.Interest)))
		assert.Equal(t, start.AddDate(0, i+1, 0), p.DueDate)
		totalPrincipal = totalPrincipal.Add(p.Principal)
	}
	assert.True(t, totalPrincipal.Equal(amount), "total pokok jadwal harus sama dengan pokok pinjaman")
}

func TestBuildAmortizationScheduleRoundingAbsorbedByLastInstallment(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(10_000_000)

	// 10jt / 3 = 3.333.333,33 per bulan; sisa 0,01 masuk angsuran terakhir.
	plans, err := BuildAmortizationSchedule(amount, 3, decimal.NewFromInt(2), start)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	perMonth := decimal.RequireFromString("3333333.33")
	assert.True(t, plans[0].Principal.Equal(perMonth))
	assert.True(t, plans[1].Principal.Equal(perMonth))
	assert.True(t, plans[2].Principal.Equal(decimal.RequireFromString("3333333.34")))

	total := plans[0].Principal.Add(plans[1].Principal).Add(plans[2].Principal)
	assert.True(t, total.Equal(amount))
}

func TestBuildAmortizationScheduleRejectsBadInput(t *testing.T) {
	start := time.Now()

	_, err := BuildAmortizationSchedule(decimal.Zero, 12, decimal.NewFromInt(1), start)
	assert.ErrorIs(t, err, ErrInvalidLoanAmount)

	_, err = BuildAmortizationSchedule(decimal.NewFromInt(-5), 12, decimal.NewFromInt(1), start)
	assert.ErrorIs(t, err, ErrInvalidLoanAmount)

	_, err = BuildAmortizationSchedule(decimal.NewFromInt(1000), 0, decimal.NewFromInt(1), start)
	assert.ErrorIs(t, err, ErrInvalidTenor)
}

func TestBuildAmortizationScheduleZeroRate(t *testing.T) {
	plans, err := BuildAmortizationSchedule(decimal.NewFromInt(600), 6, decimal.Zero, time.Now())
	require.NoError(t, err)
	for _, p := range plans {
		assert.True(t, p.Interest.IsZero())
		assert.True(t, p.Amount.Equal(p.Principal))
	}
}
