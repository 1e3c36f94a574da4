package models

import "time"

// Role controls what a user may change.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// CanMutateTransactions is the single permission check for every gated action.
func CanMutateTransactions(r Role) bool {
	return r == RoleAdmin
}

// Profile is the application-side record of a user. Its ID equals the
// credential ID of the same user.
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Role      Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
