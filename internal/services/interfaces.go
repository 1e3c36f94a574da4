package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"khata/internal/ledger"
	"khata/internal/models"
)

// AuthServicer defines the contract for credentials and server-side sessions.
type AuthServicer interface {
	SignUp(ctx context.Context, name, email, password string, role models.Role) (*models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Credential, error)
	StartSession(ctx context.Context, credentialID string) (*models.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	SessionIdentity(ctx context.Context, sessionID string) (string, error)
}

// ProfileServicer defines the contract for reading user profiles.
type ProfileServicer interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// TransactionInput carries the fields of a new ledger entry.
type TransactionInput struct {
	From     string
	To       string
	Purpose  string
	Amount   decimal.Decimal
	Currency models.Currency
	Date     time.Time
}

// TransactionUpdate carries the fields to change on an existing entry.
// Nil fields keep their stored value.
type TransactionUpdate struct {
	From     *string
	To       *string
	Purpose  *string
	Amount   *decimal.Decimal
	Currency *models.Currency
	Date     *time.Time
}

// TransactionServicer defines the contract for ledger mutations and reads.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in TransactionInput, createdBy string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate, editor string) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id, editor string) error
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	Subscribe(ctx context.Context, fn func([]models.Transaction)) (unsubscribe func(), err error)
}

// ReceiverServicer defines the contract for the receiver usage counters.
type ReceiverServicer interface {
	Increment(tx *gorm.DB, name string) error
	ListReceivers(ctx context.Context) ([]models.Receiver, error)
}

// AuditFilter holds optional filter parameters for listing audit entries.
type AuditFilter struct {
	EntityID string
	Action   models.AuditAction
}

// AuditServicer defines the contract for the append-only audit trail.
type AuditServicer interface {
	Record(tx *gorm.DB, action models.AuditAction, entityType models.EntityType, entityID, performedBy string, before, after any) error
	ListLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error)
	Subscribe(ctx context.Context, fn func([]models.AuditLog)) (unsubscribe func(), err error)
	Refresh(ctx context.Context)
}

// SettingsServicer defines the contract for the shared conversion rate.
type SettingsServicer interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateRate(ctx context.Context, rate decimal.Decimal, editor string) (*models.Settings, error)
	Subscribe(ctx context.Context, fn func(models.Settings)) (unsubscribe func(), err error)
}

// Dashboard is the admin overview of the whole ledger.
type Dashboard struct {
	Settings     models.Settings `json:"settings"`
	Summary      ledger.Summary  `json:"summary"`
	LastEditor   string          `json:"last_editor"`
	LastEditAt   *time.Time      `json:"last_edit_at,omitempty"`
	Receivers    int             `json:"receivers"`
	Participants []string        `json:"participants"`
}

// DashboardServicer defines the contract for the admin overview.
type DashboardServicer interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}
