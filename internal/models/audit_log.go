package models

import (
	"time"
)

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// IsValid reports whether a is a known action.
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// EntityType names the kind of record an audit entry refers to.
type EntityType string

const (
	EntityTransaction EntityType = "transaction"
	EntityUser        EntityType = "user"
	EntitySettings    EntityType = "settings"
)

// AuditLog is an append-only record of a ledger mutation.
type AuditLog struct {
	Base
	Action       AuditAction `gorm:"size:16;not null;index" json:"action"`
	EntityType   EntityType  `gorm:"size:32;not null" json:"entity_type"`
	EntityID     string      `gorm:"not null;index" json:"entity_id"`
	PerformedBy  string      `gorm:"not null" json:"performed_by"`
	PerformedAt  time.Time   `gorm:"not null;index" json:"performed_at"`
	BeforeValues Snapshot    `json:"before_values"`
	AfterValues  Snapshot    `json:"after_values"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "logs"
}
