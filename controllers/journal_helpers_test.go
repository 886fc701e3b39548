package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavingJournalAccounts(t *testing.T) {
	const cashID, savingID = uint(3), uint(12)

	// Setoran: debit kas, kredit akun simpanan.
	debit, credit := savingJournalAccounts(false, cashID, savingID)
	assert.Equal(t, cashID, debit)
	assert.Equal(t, savingID, credit)

	// Penarikan: arah dibalik.
	debit, credit = savingJournalAccounts(true, cashID, savingID)
	assert.Equal(t, savingID, debit)
	assert.Equal(t, cashID, credit)
}

func TestSavingJournalDescription(t *testing.T) {
	assert.Equal(t,
		"Setoran Simpanan Wajib a/n Budi",
		savingJournalDescription(false, "Simpanan Wajib", "Budi"))
	assert.Equal(t,
		"Penarikan simpanan a/n Siti",
		savingJournalDescription(true, "Simpanan Sukarela", "Siti"))
}
