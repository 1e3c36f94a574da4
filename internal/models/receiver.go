package models

import (
	"strings"
	"time"
)

// Receiver counts how often a name has been used as a transaction receiver.
type Receiver struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	UsageCount int64     `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Receiver
func (Receiver) TableName() string {
	return "receivers"
}

// ReceiverKey normalizes a receiver name to its counter key.
func ReceiverKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
