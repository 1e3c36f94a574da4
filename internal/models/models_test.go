package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCanMutateTransactions(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleViewer, false},
		{Role(""), false},
		{Role("owner"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := CanMutateTransactions(tt.role); got != tt.want {
				t.Errorf("CanMutateTransactions(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	if c, ok := ParseCurrency(" kwd "); !ok || c != CurrencyKWD {
		t.Errorf("ParseCurrency(kwd) = %q, %v", c, ok)
	}
	if _, ok := ParseCurrency("USD"); ok {
		t.Error("expected USD to be rejected")
	}
}

func TestFitsColumn(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"100", true},
		{"0.0001", true},
		{"2.50000", true},
		{"9999999999999999.9999", true},
		{"0.00001", false},
		{"1.23456", false},
		{"10000000000000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FitsColumn(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FitsColumn(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReceiverKey(t *testing.T) {
	if got := ReceiverKey("  Ali Hussan "); got != "ali hussan" {
		t.Errorf("ReceiverKey() = %q", got)
	}
}

func TestCalendarDate(t *testing.T) {
	in := time.Date(2024, 3, 5, 23, 59, 0, 0, time.FixedZone("PKT", 5*3600))
	got := CalendarDate(in)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalendarDate() = %s, want %s", got, want)
	}
}

func TestSnapshot_JSONAndSQL(t *testing.T) {
	var empty Snapshot
	b, err := json.Marshal(struct {
		S Snapshot `json:"s"`
	}{empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"s":null}` {
		t.Errorf("empty snapshot marshalled to %s", b)
	}
	if v, _ := empty.Value(); v != nil {
		t.Errorf("empty snapshot Value() = %v, want nil", v)
	}

	snap, err := NewSnapshot(map[string]any{"is_deleted": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var scanned Snapshot
	if err := scanned.Scan([]byte(snap)); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	var out map[string]bool
	if err := scanned.Decode(&out); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !out["is_deleted"] {
		t.Errorf("decoded snapshot = %v", out)
	}
}
