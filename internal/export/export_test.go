package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"khata/internal/models"
)

func sampleTransactions() []models.Transaction {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	return []models.Transaction{
		{Base: models.Base{ID: "a", CreatedAt: created}, From: "Muhammad Raiz", To: "Ali Hussan", Purpose: "Rent", Amount: decimal.NewFromInt(100), Currency: models.CurrencyPKR, Date: day, CreatedBy: "admin@example.com"},
		{Base: models.Base{ID: "b", CreatedAt: created}, From: "Qaisar Shahzad", To: "Ali Hussan", Amount: decimal.NewFromInt(50), Currency: models.CurrencyPKR, Date: day, CreatedBy: "admin@example.com"},
		{Base: models.Base{ID: "c", CreatedAt: created}, From: "Muhammad Rizwan", To: "Muhammad Nawaz", Purpose: "Fees", Amount: decimal.NewFromInt(10), Currency: models.CurrencyKWD, Date: day, CreatedBy: "admin@example.com"},
	}
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" PDF ")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	f, ok = ParseFormat("xlsx")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, f)

	_, ok = ParseFormat("csv")
	assert.False(t, ok)

	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 6, 9, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "ledger-report-2024-06-09.pdf", FileName(FormatPDF, now))
	assert.Equal(t, "ledger-report-2024-06-09.xlsx", FileName(FormatXLSX, now))
}

func TestDateRange_Period(t *testing.T) {
	r := DateRange{
		Start: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Period: Jan 02, 2024 - Mar 15, 2024", r.Period())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1000", "1,000"},
		{"150.5", "150.5"},
		{"1234567.891", "1,234,567.89"},
		{"-1234", "-1,234"},
		{"999", "999"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	r := &DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, PDF(&buf, sampleTransactions(), r))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	buf.Reset()
	require.NoError(t, PDF(&buf, nil, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDF_LongAndNonLatinText(t *testing.T) {
	list := sampleTransactions()
	list[0].Purpose = strings.Repeat("School fees and uniforms ", 10)
	list[0].To = "علی حسن"

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, list, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestFitCell(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)
	avail := 55 - 2*pdf.GetCellMargin()

	assert.Equal(t, "Rent", fitCell(pdf, "Rent", 55))

	got := fitCell(pdf, strings.Repeat("Groceries ", 20), 55)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(got), avail)
	assert.True(t, strings.HasPrefix(got, "Groceries"))
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	r := &DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, XLSX(&buf, sampleTransactions(), r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	cell := func(name string) string {
		v, err := f.GetCellValue(SheetName, name)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, ReportTitle, cell("A1"))
	assert.Equal(t, "Period: Jan 01, 2024 - Jan 31, 2024", cell("A2"))
	assert.Equal(t, "Date", cell("A4"))
	assert.Equal(t, "Created At", cell("H4"))

	assert.Equal(t, "2024-01-02", cell("A5"))
	assert.Equal(t, "Rent", cell("D5"))
	assert.Equal(t, "100", cell("E5"))
	assert.Equal(t, "PKR", cell("F5"))
	assert.Equal(t, "admin@example.com", cell("G5"))
	assert.Equal(t, "2024-01-02 09:30", cell("H5"))
	assert.Equal(t, "", cell("D6"))

	assert.Equal(t, "TOTALS", cell("A9"))
	assert.Equal(t, "PKR Total", cell("A10"))
	assert.Equal(t, "150", cell("E10"))
	assert.Equal(t, "KWD Total", cell("A11"))
	assert.Equal(t, "10", cell("E11"))
	assert.Equal(t, "KWD", cell("F11"))
}

func TestXLSX_WithoutRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	totalsRow, err := f.GetCellValue(SheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, "TOTALS", totalsRow)
}
