package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, headers []string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
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

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseBulkSavings(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	headers := []string{ColCooperativeNumber, ColMemberName, ColSavingType, ColAmount, ColDate, ColDescription}

	buf := workbookBytes(t, headers, [][]interface{}{
		{"KOP-2025-000001", "Budi", "Simpanan Wajib", "100000", "2025-05-20", "setoran mei"},
		{"KOP-2025-000002", "Siti", "Simpanan Sukarela", "250,000", "", ""},
	})

	rows, err := ParseBulkSavings(buf, today)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "KOP-2025-000001", rows[0].CooperativeNumber)
	assert.Equal(t, "Simpanan Wajib", rows[0].SavingTypeName)
	assert.Equal(t, "100000", rows[0].Amount.String())
	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "setoran mei", rows[0].Description)

	// Pemisah ribuan dibuang, tanggal kosong jatuh ke hari ini.
	assert.Equal(t, "250000", rows[1].Amount.String())
	assert.Equal(t, today, rows[1].Date)
}

func TestParseBulkSavingsSkipsIncompleteRows(t *testing.T) {
	today := time.Now()
	headers := []string{ColCooperativeNumber, ColSavingType, ColAmount}

	buf := workbookBytes(t, headers, [][]interface{}{
		{"", "Simpanan Wajib", "100000"},          // tanpa nomor koperasi
		{"KOP-2025-000001", "Simpanan Wajib", ""}, // tanpa jumlah
		{"KOP-2025-000002", "Simpanan Wajib", "0"},
		{"KOP-2025-000003", "Simpanan Wajib", "-50"},
		{"KOP-2025-000004", "Simpanan Wajib", "75000"},
	})

	rows, err := ParseBulkSavings(buf, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "KOP-2025-000004", rows[0].CooperativeNumber)
	assert.Equal(t, 6, rows[0].RowNumber)
}

func TestParseBulkSavingsAcceptsMachineHeaders(t *testing.T) {
	today := time.Now()
	headers := []string{"cooperative_number", "saving_type_name", "amount", "date", "description"}

	buf := workbookBytes(t, headers, [][]interface{}{
		{"KOP-2025-000009", "Simpanan Pokok", "500000", "2025/01/15", "via export lama"},
	})

	rows, err := ParseBulkSavings(buf, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), rows[0].Date)
}

func TestParseBulkSavingsErrors(t *testing.T) {
	today := time.Now()

	// Header tanpa kolom wajib.
	buf := workbookBytes(t, []string{"Kolom Lain"}, [][]interface{}{{"x"}})
	_, err := ParseBulkSavings(buf, today)
	assert.Error(t, err)

	// Hanya header, tanpa baris data.
	buf = workbookBytes(t, []string{ColCooperativeNumber, ColSavingType, ColAmount}, nil)
	_, err = ParseBulkSavings(buf, today)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)

	// Semua baris tersaring.
	buf = workbookBytes(t, []string{ColCooperativeNumber, ColSavingType, ColAmount}, [][]interface{}{
		{"", "Simpanan Wajib", "100000"},
	})
	_, err = ParseBulkSavings(buf, today)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)

	// Bukan file Excel.
	_, err = ParseBulkSavings(bytes.NewBufferString("bukan excel"), today)
	assert.Error(t, err)
}

func TestBuildSavingsTemplateRoundTrip(t *testing.T) {
	members := []TemplateMember{
		{CooperativeNumber: "KOP-2025-000001", Name: "Budi"},
		{CooperativeNumber: "KOP-2025-000002", Name: "Siti"},
	}
	f, err := BuildSavingsTemplate(members, []string{"Simpanan Pokok", "Simpanan Wajib"})
	require.NoError(t, err)

	sheet := f.GetSheetName(0)
	assert.Equal(t, "Data Simpanan", sheet)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ColCooperativeNumber, rows[0][0])
	assert.Equal(t, "KOP-2025-000001", rows[1][0])
	assert.Equal(t, "Siti", rows[2][1])
}
