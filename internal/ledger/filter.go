// Package ledger holds the pure read-side logic over a transaction snapshot:
// filtering, totals and the dropdown option lists. Nothing here touches the
// store, so every function is safe to call from any goroutine.
package ledger

import (
	"strings"
	"time"

	"khata/internal/models"
)

// Filter narrows a snapshot. Zero-valued fields impose no constraint and all
// set fields are AND-combined.
type Filter struct {
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Sender   string
	Receiver string
	Currency models.Currency
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.DateFrom.IsZero() && f.DateTo.IsZero() &&
		f.Sender == "" && f.Receiver == "" && f.Currency == ""
}

// HasDateRange reports whether both ends of the date range are set.
func (f Filter) HasDateRange() bool {
	return !f.DateFrom.IsZero() && !f.DateTo.IsZero()
}

// Match reports whether tx passes every set criterion.
func (f Filter) Match(tx models.Transaction) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(tx.From), q) &&
			!strings.Contains(strings.ToLower(tx.To), q) &&
			!strings.Contains(strings.ToLower(tx.Purpose), q) {
			return false
		}
	}

	day := models.CalendarDate(tx.Date)
	if !f.DateFrom.IsZero() && day.Before(models.CalendarDate(f.DateFrom)) {
		return false
	}
	if !f.DateTo.IsZero() && day.After(models.CalendarDate(f.DateTo)) {
		return false
	}

	if f.Sender != "" && tx.From != f.Sender {
		return false
	}
	if f.Receiver != "" && tx.To != f.Receiver {
		return false
	}
	if f.Currency != "" && tx.Currency != f.Currency {
		return false
	}
	return true
}

// Apply returns the non-deleted transactions of list that match f, in the
// order they appear in list. The input is not modified.
func Apply(list []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(list))
	for _, tx := range list {
		if tx.IsDeleted {
			continue
		}
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Senders lists distinct sender names in first-seen order.
func Senders(list []models.Transaction) []string {
	return distinct(list, func(tx models.Transaction) string { return tx.From })
}

// Receivers lists distinct receiver names in first-seen order.
func Receivers(list []models.Transaction) []string {
	return distinct(list, func(tx models.Transaction) string { return tx.To })
}

func distinct(list []models.Transaction, key func(models.Transaction) string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0)
	for _, tx := range list {
		k := key(tx)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
