package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Label kolom template simpanan. Parser menerima label manusiawi maupun
// key mesin supaya file hasil edit ulang tetap terbaca.
const (
	ColCooperativeNumber = "Nomor Koperasi"
	ColMemberName        = "Nama Anggota"
	ColSavingType        = "Tipe Simpanan"
	ColAmount            = "Jumlah"
	ColDate              = "Tanggal (YYYY-MM-DD)"
	ColDescription       = "Keterangan"
)

var headerAliases = map[string][]string{
	ColCooperativeNumber: {ColCooperativeNumber, "cooperative_number"},
	ColSavingType:        {ColSavingType, "saving_type_name"},
	ColAmount:            {ColAmount, "amount"},
	ColDate:              {ColDate, "date"},
	ColDescription:       {ColDescription, "description"},
}

// Satu baris hasil parse; RowNumber adalah nomor baris sheet (1-based,
// termasuk header) untuk pesan error yang bisa dilacak user.
type BulkSavingRow struct {
	RowNumber         int
	CooperativeNumber string
	SavingTypeName    string
	Amount            decimal.Decimal
	Date              time.Time
	Description       string
}

var ErrEmptyWorkbook = errors.New("file Excel tidak berisi data simpanan yang valid untuk diproses")

// ParseBulkSavings membaca sheet pertama workbook. Urutan kolom bebas
// (dicari lewat label header). Baris tanpa nomor koperasi atau tanpa
// jumlah positif dilewati tanpa error; tanggal kosong/tidak terbaca
// jatuh ke "hari ini".
func ParseBulkSavings(r io.Reader, today time.Time) ([]BulkSavingRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file Excel: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	idx := map[string]int{}
	for col, cell := range rows[0] {
		idx[strings.TrimSpace(cell)] = col
	}
	colOf := func(label string) int {
		for _, alias := range headerAliases[label] {
			if col, ok := idx[alias]; ok {
				return col
			}
		}
		return -1
	}

	numberCol := colOf(ColCooperativeNumber)
	typeCol := colOf(ColSavingType)
	amountCol := colOf(ColAmount)
	dateCol := colOf(ColDate)
	descCol := colOf(ColDescription)
	if numberCol < 0 || typeCol < 0 || amountCol < 0 {
		return nil, errors.New("header kolom tidak lengkap: Nomor Koperasi, Tipe Simpanan dan Jumlah wajib ada")
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	out := make([]BulkSavingRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		number := cell(row, numberCol)
		if number == "" {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(cell(row, amountCol), ",", ""))
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		out = append(out, BulkSavingRow{
			RowNumber:         i + 2,
			CooperativeNumber: number,
			SavingTypeName:    cell(row, typeCol),
			Amount:            amount,
			Date:              parseDateOr(cell(row, dateCol), today),
			Description:       cell(row, descCol),
		})
	}

	if len(out) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return out, nil
}

func parseDateOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02", "02-01-2006", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// Baris anggota untuk template export.
type TemplateMember struct {
	CooperativeNumber string
	Name              string
}

// BuildSavingsTemplate menyusun workbook template bulk: satu baris per
// anggota aktif, kolom Tipe Simpanan divalidasi dropdown dari daftar
// tipe yang ada.
func BuildSavingsTemplate(members []TemplateMember, savingTypes []string) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Data Simpanan"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{ColCooperativeNumber, ColMemberName, ColSavingType, ColAmount, ColDate, ColDescription}
	for col, h := range headers {
		name, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, name, h); err != nil {
			return nil, err
		}
	}
	widths := []float64{20, 30, 25, 15, 20, 30}
	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, name, name, w)
	}

	for i, m := range members {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.CooperativeNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Name)
	}

	if len(savingTypes) > 0 && len(members) > 0 {
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("C2:C%d", len(members)+1)
		if err := dv.SetDropList(savingTypes); err != nil {
			return nil, err
		}
		dv.SetError(excelize.DataValidationErrorStyleStop,
			"Tipe Simpanan Tidak Valid",
			"Silakan pilih tipe simpanan dari daftar.")
		if err := f.AddDataValidation(sheet, dv); err != nil {
			return nil, err
		}
	}

	return f, nil
}
