package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsWorkbookRoundTrip(t *testing.T) {
	in := []AccountRow{
		{AccountNumber: "1-0000", Name: "ASET", TypeName: "Aset"},
		{AccountNumber: "1-1110", Name: "Kas", TypeName: "Aset", ParentNumber: "1-0000", Description: "kas tunai"},
	}

	f, err := BuildAccountsWorkbook(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	out, err := ParseAccountsWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "1-0000", out[0].AccountNumber)
	assert.Equal(t, "ASET", out[0].Name)
	assert.Equal(t, "1-1110", out[1].AccountNumber)
	assert.Equal(t, "1-0000", out[1].ParentNumber)
	assert.Equal(t, "kas tunai", out[1].Description)
	assert.Equal(t, 3, out[1].RowNumber)
}

func TestParseAccountsWorkbookRejectsMissingName(t *testing.T) {
	f, err := BuildAccountsWorkbook([]AccountRow{
		{AccountNumber: "1-1110", Name: "Kas", TypeName: "Aset"},
	})
	require.NoError(t, err)

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A3", "1-1120"))
	// B3 dibiarkan kosong

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err = ParseAccountsWorkbook(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baris 3")
}
