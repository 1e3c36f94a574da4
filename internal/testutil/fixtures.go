package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"khata/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture credential.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates a credential and matching profile with a unique email.
func CreateTestProfile(t *testing.T, db *gorm.DB, role models.Role) *models.Profile {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestProfileWithEmail(t, db, email, role)
}

// CreateTestProfileWithEmail creates a credential and profile for email.
func CreateTestProfileWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	credential := &models.Credential{Email: email, PasswordHash: string(hash)}
	if err := db.Create(credential).Error; err != nil {
		t.Fatalf("failed to create test credential: %v", err)
	}

	profile := &models.Profile{
		ID:    credential.ID,
		Name:  fmt.Sprintf("Test User %d", nextID()),
		Email: email,
		Role:  role,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestCredential creates a credential with no profile, the state of a
// user whose profile row has not been written yet.
func CreateTestCredential(t *testing.T, db *gorm.DB) *models.Credential {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	credential := &models.Credential{
		Email:        fmt.Sprintf("orphan%d@test.com", nextID()),
		PasswordHash: string(hash),
	}
	if err := db.Create(credential).Error; err != nil {
		t.Fatalf("failed to create test credential: %v", err)
	}
	return credential
}

// CreateTestTransaction inserts a ledger entry directly, bypassing the
// receiver counter and audit trail.
func CreateTestTransaction(t *testing.T, db *gorm.DB, from, to string, amount int64, currency models.Currency, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		From:      from,
		To:        to,
		Purpose:   fmt.Sprintf("Fixture %d", nextID()),
		Amount:    decimal.NewFromInt(amount),
		Currency:  currency,
		Date:      models.CalendarDate(date),
		CreatedBy: "fixture@test.com",
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// Day parses a YYYY-MM-DD date or fails the test.
func Day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}
