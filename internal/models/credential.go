package models

import "time"

// Credential is the email/password identity behind a profile.
type Credential struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// TableName specifies the table name for Credential
func (Credential) TableName() string {
	return "credentials"
}

// Session is a server-side record of an issued token. Removing the row
// revokes the token.
type Session struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	CredentialID string    `gorm:"type:uuid;not null;index" json:"credential_id"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}
