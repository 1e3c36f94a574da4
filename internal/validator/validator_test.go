package validator

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	From     string          `validate:"required,notblank"`
	Amount   decimal.Decimal `validate:"required,gt=0"`
	Currency string          `validate:"required,ledger_currency"`
	Role     string          `validate:"omitempty,user_role"`
	Date     string          `validate:"required,ledger_date"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestConfigure(t *testing.T) {
	v := newValidate()
	valid := sample{From: "Ali", Amount: decimal.NewFromInt(10), Currency: "KWD", Role: "viewer", Date: "2024-01-15"}

	tests := []struct {
		name    string
		mutate  func(s *sample)
		wantErr bool
	}{
		{"valid", func(s *sample) {}, false},
		{"rfc3339 date", func(s *sample) { s.Date = "2024-01-15T10:00:00Z" }, false},
		{"blank from", func(s *sample) { s.From = "   " }, true},
		{"zero amount", func(s *sample) { s.Amount = decimal.Zero }, true},
		{"negative amount", func(s *sample) { s.Amount = decimal.NewFromInt(-5) }, true},
		{"fractional amount", func(s *sample) { s.Amount = decimal.RequireFromString("0.01") }, false},
		{"unknown currency", func(s *sample) { s.Currency = "USD" }, true},
		{"lower case currency", func(s *sample) { s.Currency = "pkr" }, false},
		{"padded currency", func(s *sample) { s.Currency = " kwd " }, false},
		{"unknown role", func(s *sample) { s.Role = "owner" }, true},
		{"bad date", func(s *sample) { s.Date = "15/01/2024" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := v.Struct(s)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-02-29T22:30:00+05:00")
	if !ok {
		t.Fatal("expected RFC3339 date to parse")
	}
	if !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate() = %s", got)
	}
	if _, ok := ParseDate(""); ok {
		t.Error("expected empty date to be rejected")
	}
}
