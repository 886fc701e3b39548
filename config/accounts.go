package config

import "os"

// Nomor akun yang dipakai poster jurnal. Bisa dioverride lewat env supaya
// tidak ada literal tersebar di controller; lookup tetap dilakukan per
// operasi dan gagal keras kalau akunnya tidak ada di COA.
var (
	CashAccountNumber        = "1-1110" // Kas
	SalesIncomeAccountNumber = "4-1100" // Pendapatan Penjualan
)

func LoadAccountNumbers() {
	if s := os.Getenv("CASH_ACCOUNT_NUMBER"); s != "" {
		CashAccountNumber = s
	}
	if s := os.Getenv("SALES_INCOME_ACCOUNT_NUMBER"); s != "" {
		SalesIncomeAccountNumber = s
	}
}
