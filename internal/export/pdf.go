package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"khata/internal/models"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 30},
	{"From", 35},
	{"To", 35},
	{"Purpose", 55},
	{"Amount", 35},
}

// PDF writes the report to w. dateRange may be nil. The core fonts cover
// cp1252 only, so text outside it prints as "?"; XLSX keeps full Unicode.
func PDF(w io.Writer, list []models.Transaction, dateRange *DateRange) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 20)
	pdf.Text(14, 22, ReportTitle)

	startY := 30.0
	if dateRange != nil {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(14, 32, dateRange.Period())
		startY = 40
	}

	pdf.SetXY(10, startY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, tx := range list {
		purpose := tx.Purpose
		if purpose == "" {
			purpose = "-"
		}
		row := []string{
			tx.Date.Format(displayDate),
			tx.From,
			tx.To,
			purpose,
			fmt.Sprintf("%s %s", FormatAmount(tx.Amount), tx.Currency),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, fitCell(pdf, tr(row[i]), col.width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pkr, kwd := totals(list)
	finalY := pdf.GetY() + 10
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(14, finalY, "Total PKR: "+FormatAmount(pkr))
	pdf.Text(14, finalY+8, "Total KWD: "+FormatAmount(kwd))

	return pdf.Output(w)
}

// fitCell shortens an already translated s with an ellipsis until it fits a
// cell of width.
func fitCell(pdf *fpdf.Fpdf, s string, width float64) string {
	avail := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= avail {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > avail {
		s = s[:len(s)-1]
	}
	return s + "..."
}
