package ledger

import (
	"github.com/shopspring/decimal"

	"khata/internal/models"
)

// CurrencyTotals sums amounts per currency. Amounts in different currencies
// are never added together here.
type CurrencyTotals struct {
	PKR decimal.Decimal `json:"pkr"`
	KWD decimal.Decimal `json:"kwd"`
}

func (c *CurrencyTotals) add(currency models.Currency, amount decimal.Decimal) {
	switch currency {
	case models.CurrencyPKR:
		c.PKR = c.PKR.Add(amount)
	case models.CurrencyKWD:
		c.KWD = c.KWD.Add(amount)
	}
}

// ParticipantTotals is what one family member received and sent.
type ParticipantTotals struct {
	Name     string         `json:"name"`
	Received CurrencyTotals `json:"received"`
	Sent     CurrencyTotals `json:"sent"`
}

// Summary aggregates a list of transactions.
type Summary struct {
	Count        int                 `json:"count"`
	Totals       CurrencyTotals      `json:"totals"`
	Rate         decimal.Decimal     `json:"rate"`
	ConvertedKWD decimal.Decimal     `json:"converted_kwd"`
	GrandTotal   decimal.Decimal     `json:"grand_total"`
	Participants []ParticipantTotals `json:"participants"`
}

// Summarize totals list per currency and per participant. KWD is converted
// to PKR at rate for the grand total only.
func Summarize(list []models.Transaction, rate decimal.Decimal, participants []string) Summary {
	s := Summary{
		Rate:         rate,
		Participants: make([]ParticipantTotals, len(participants)),
	}
	index := make(map[string]int, len(participants))
	for i, name := range participants {
		s.Participants[i].Name = name
		index[name] = i
	}

	for _, tx := range list {
		if tx.IsDeleted {
			continue
		}
		s.Count++
		s.Totals.add(tx.Currency, tx.Amount)
		if i, ok := index[tx.To]; ok {
			s.Participants[i].Received.add(tx.Currency, tx.Amount)
		}
		if i, ok := index[tx.From]; ok {
			s.Participants[i].Sent.add(tx.Currency, tx.Amount)
		}
	}

	s.ConvertedKWD = s.Totals.KWD.Mul(rate)
	s.GrandTotal = s.Totals.PKR.Add(s.ConvertedKWD)
	return s
}

// View is the filtered list together with its summary.
type View struct {
	Transactions []models.Transaction `json:"transactions"`
	Summary      Summary              `json:"summary"`
	Senders      []string             `json:"senders"`
	Receivers    []string             `json:"receivers"`
}

// NewView filters snapshot and summarizes the visible rows. Dropdown options
// come from the unfiltered snapshot so narrowing one filter never hides the
// choices of another.
func NewView(snapshot []models.Transaction, f Filter, rate decimal.Decimal, participants []string) View {
	visible := Apply(snapshot, f)
	return View{
		Transactions: visible,
		Summary:      Summarize(visible, rate, participants),
		Senders:      Senders(snapshot),
		Receivers:    Receivers(snapshot),
	}
}
