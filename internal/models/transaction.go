package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single money movement between two family members.
// Rows are never physically removed; IsDeleted hides them from reads.
type Transaction struct {
	Base
	From      string          `gorm:"column:sender;not null" json:"from"`
	To        string          `gorm:"column:receiver;not null" json:"to"`
	Purpose   string          `gorm:"column:purpose" json:"purpose"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Currency  Currency        `gorm:"size:3;not null" json:"currency"`
	Date      time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedBy string          `gorm:"not null" json:"created_by"`
	UpdatedAt *time.Time      `gorm:"autoUpdateTime:false" json:"updated_at"`
	IsDeleted bool            `gorm:"not null;default:false" json:"is_deleted"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
