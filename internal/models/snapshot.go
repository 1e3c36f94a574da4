package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Snapshot holds a JSON document of a record as it was at one point in time.
// An empty Snapshot encodes as JSON null and SQL NULL.
type Snapshot []byte

// NewSnapshot serializes v.
func NewSnapshot(v any) (Snapshot, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return Snapshot(b), nil
}

// Decode unmarshals the snapshot into v.
func (s Snapshot) Decode(v any) error {
	if len(s) == 0 {
		return fmt.Errorf("empty snapshot")
	}
	return json.Unmarshal(s, v)
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

// Value implements driver.Valuer.
func (s Snapshot) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = append(Snapshot(nil), v...)
	case string:
		*s = Snapshot(v)
	default:
		return fmt.Errorf("snapshot: unsupported scan type %T", src)
	}
	return nil
}

// GormDBDataType picks jsonb on PostgreSQL and text elsewhere.
func (Snapshot) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
