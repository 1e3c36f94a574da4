package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the two currencies the ledger records.
type Currency string

const (
	CurrencyPKR Currency = "PKR"
	CurrencyKWD Currency = "KWD"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyPKR, CurrencyKWD}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	return c == CurrencyPKR || c == CurrencyKWD
}

// ParseCurrency accepts any letter case.
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// AmountPlaces is the number of decimal places stored for amounts and rates.
const AmountPlaces = 4

// maxAmount is the first value a NUMERIC(20,4) column cannot hold.
var maxAmount = decimal.New(1, 20-AmountPlaces)

// FitsColumn reports whether d is stored without rounding or overflow.
func FitsColumn(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountPlaces)) && d.Abs().LessThan(maxAmount)
}
