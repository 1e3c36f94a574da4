package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"khata/internal/models"
)

// SheetName is the worksheet holding the rows.
const SheetName = "Transactions"

var xlsxHeader = []any{"Date", "From", "To", "Purpose", "Amount", "Currency", "Created By", "Created At"}

// XLSX writes the report workbook to w. dateRange may be nil; when set the
// period goes in a second title row.
func XLSX(w io.Writer, list []models.Transaction, dateRange *DateRange) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	row := 1
	setRow := func(values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(SheetName, cell, &values)
	}

	if err := setRow([]any{ReportTitle}); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if dateRange != nil {
		if err := setRow([]any{dateRange.Period()}); err != nil {
			return fmt.Errorf("writing period: %w", err)
		}
	}
	row++

	if err := setRow(xlsxHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, tx := range list {
		values := []any{
			tx.Date.Format("2006-01-02"),
			tx.From,
			tx.To,
			tx.Purpose,
			tx.Amount.InexactFloat64(),
			string(tx.Currency),
			tx.CreatedBy,
			tx.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := setRow(values); err != nil {
			return fmt.Errorf("writing transaction row: %w", err)
		}
	}

	pkr, kwd := totals(list)
	row++
	summary := [][]any{
		{"TOTALS"},
		{"PKR Total", "", "", "", pkr.InexactFloat64(), string(models.CurrencyPKR)},
		{"KWD Total", "", "", "", kwd.InexactFloat64(), string(models.CurrencyKWD)},
	}
	for _, values := range summary {
		if err := setRow(values); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
