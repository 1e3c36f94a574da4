// Package export renders ledger reports as PDF and XLSX documents.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/models"
)

// Format is a supported report format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ReportTitle heads every report.
const ReportTitle = "Finance Ledger Report"

// ParseFormat accepts "pdf" or "xlsx" in any case.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX:
		return f, true
	}
	return "", false
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// DateRange is the reporting period printed under the title.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Period renders the range as "Period: Jan 02, 2006 - Jan 02, 2006".
func (r DateRange) Period() string {
	return fmt.Sprintf("Period: %s - %s", r.Start.Format(displayDate), r.End.Format(displayDate))
}

// FileName is ledger-report-YYYY-MM-DD.<ext> for the given day.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("ledger-report-%s.%s", now.Format("2006-01-02"), f)
}

const displayDate = "Jan 02, 2006"

// totals sums list per currency.
func totals(list []models.Transaction) (pkr, kwd decimal.Decimal) {
	for _, tx := range list {
		switch tx.Currency {
		case models.CurrencyPKR:
			pkr = pkr.Add(tx.Amount)
		case models.CurrencyKWD:
			kwd = kwd.Add(tx.Amount)
		}
	}
	return pkr, kwd
}

// FormatAmount groups the integer part with commas and keeps up to two
// decimals, dropping trailing zeros.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(2).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}
