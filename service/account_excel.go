package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Baris COA untuk import/export Excel.
type AccountRow struct {
	RowNumber     int
	AccountNumber string
	Name          string
	TypeName      string
	ParentNumber  string
	Description   string
}

var accountHeaders = []string{"Nomor Akun", "Nama Akun", "Tipe Akun", "Akun Induk", "Keterangan"}

// BuildAccountsWorkbook menyusun workbook export COA.
func BuildAccountsWorkbook(rows []AccountRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Chart of Accounts"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range accountHeaders {
		name, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, name, h); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.AccountNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.TypeName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.ParentNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Description)
	}
	return f, nil
}

// ParseAccountsWorkbook membaca workbook import COA. Baris tanpa nomor
// akun dilewati; nomor atau nama kosong pada baris terisi adalah error.
func ParseAccountsWorkbook(r io.Reader) ([]AccountRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file Excel: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("file Excel kosong")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("file Excel tidak berisi data akun")
	}

	cell := func(row []string, col int) string {
		if col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	out := make([]AccountRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		number := cell(row, 0)
		if number == "" {
			continue
		}
		name := cell(row, 1)
		if name == "" {
			return nil, fmt.Errorf("baris %d: nama akun kosong", i+2)
		}
		out = append(out, AccountRow{
			RowNumber:     i + 2,
			AccountNumber: number,
			Name:          name,
			TypeName:      cell(row, 2),
			ParentNumber:  cell(row, 3),
			Description:   cell(row, 4),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("file Excel tidak berisi data akun")
	}
	return out, nil
}
