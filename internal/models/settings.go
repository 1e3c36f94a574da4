package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySettingsID is the primary key of the singleton settings row.
const CurrencySettingsID = "currency"

// Settings holds the shared KWD to PKR conversion rate.
type Settings struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	KWDToPKRRate decimal.Decimal `gorm:"column:kwd_to_pkr_rate;type:numeric(20,4);not null" json:"kwd_to_pkr_rate"`
	UpdatedBy    string          `json:"updated_by"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings is what readers see before anyone has saved a rate.
func DefaultSettings(rate decimal.Decimal) Settings {
	return Settings{ID: CurrencySettingsID, KWDToPKRRate: rate}
}
