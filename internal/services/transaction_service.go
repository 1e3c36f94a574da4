package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/live"
	"khata/internal/logger"
	"khata/internal/metrics"
	"khata/internal/models"
)

// transactionService handles ledger mutations and the live transaction feed.
type transactionService struct {
	db        *gorm.DB
	audit     AuditServicer
	receivers ReceiverServicer
	hub       *live.Hub[[]models.Transaction]
	// pubMu orders snapshot delivery between Subscribe and publish.
	pubMu sync.Mutex
	now   func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, audit AuditServicer, receivers ReceiverServicer) TransactionServicer {
	return &transactionService{
		db:        db,
		audit:     audit,
		receivers: receivers,
		hub:       live.NewHub[[]models.Transaction](),
		now:       time.Now,
	}
}

// CreateTransaction records a new entry, bumps the receiver counter and
// appends a CREATE audit entry in one database transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput, createdBy string) (*models.Transaction, error) {
	transaction := &models.Transaction{
		From:      strings.TrimSpace(in.From),
		To:        strings.TrimSpace(in.To),
		Purpose:   strings.TrimSpace(in.Purpose),
		Amount:    in.Amount,
		Currency:  in.Currency,
		Date:      models.CalendarDate(in.Date),
		CreatedBy: createdBy,
	}
	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.receivers.Increment(tx, transaction.To); err != nil {
			return err
		}
		return s.audit.Record(tx, models.AuditActionCreate, models.EntityTransaction, transaction.ID, createdBy, nil, transaction)
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerMutations.WithLabelValues("create").Inc()
	s.afterCommit(ctx)
	return transaction, nil
}

// UpdateTransaction merges upd into the stored entry and appends an UPDATE
// audit entry holding both versions. The receiver counter is left alone.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate, editor string) (*models.Transaction, error) {
	var after models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := findTransaction(tx, id)
		if err != nil {
			return err
		}

		after = *before
		applyUpdate(&after, upd)
		if err := validateTransaction(&after); err != nil {
			return err
		}
		now := s.now().UTC()
		after.UpdatedAt = &now

		if err := tx.Model(&models.Transaction{}).Where("id = ?", id).Updates(map[string]any{
			"sender":     after.From,
			"receiver":   after.To,
			"purpose":    after.Purpose,
			"amount":     after.Amount,
			"currency":   after.Currency,
			"date":       after.Date,
			"updated_at": now,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.audit.Record(tx, models.AuditActionUpdate, models.EntityTransaction, id, editor, before, &after)
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerMutations.WithLabelValues("update").Inc()
	s.afterCommit(ctx)
	return &after, nil
}

// DeleteTransaction flags the entry as deleted. Repeating the call on a
// deleted entry succeeds and appends another DELETE audit entry.
func (s *transactionService) DeleteTransaction(ctx context.Context, id, editor string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := findTransaction(tx, id)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if err := tx.Model(&models.Transaction{}).Where("id = ?", id).Updates(map[string]any{
			"is_deleted": true,
			"updated_at": now,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		after := *before
		after.IsDeleted = true
		return s.audit.Record(tx, models.AuditActionDelete, models.EntityTransaction, id, editor, before, &after)
	})
	if err != nil {
		return err
	}

	metrics.LedgerMutations.WithLabelValues("delete").Inc()
	s.afterCommit(ctx)
	return nil
}

// GetTransactionByID returns a non-deleted entry.
func (s *transactionService) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	transaction, err := findTransaction(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if transaction.IsDeleted {
		return nil, apperrors.ErrTransactionNotFound
	}
	return transaction, nil
}

// ListTransactions returns every non-deleted entry, newest date first.
func (s *transactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var all []models.Transaction
	if err := s.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Find(&all).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	visible := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if !t.IsDeleted {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// Subscribe delivers the current list to fn, then every list published after
// a committed mutation. fn must not block.
func (s *transactionService) Subscribe(ctx context.Context, fn func([]models.Transaction)) (func(), error) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	current, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	fn(current)
	return s.hub.Subscribe(fn), nil
}

func (s *transactionService) afterCommit(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	s.publish(ctx)
	s.audit.Refresh(ctx)
}

func (s *transactionService) publish(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if s.hub.Len() == 0 {
		return
	}
	current, err := s.ListTransactions(ctx)
	if err != nil {
		logger.Get().Errorw("failed to load transactions for subscribers", "error", err)
		return
	}
	s.hub.Publish(current)
}

func findTransaction(db *gorm.DB, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

func applyUpdate(t *models.Transaction, upd TransactionUpdate) {
	if upd.From != nil {
		t.From = strings.TrimSpace(*upd.From)
	}
	if upd.To != nil {
		t.To = strings.TrimSpace(*upd.To)
	}
	if upd.Purpose != nil {
		t.Purpose = strings.TrimSpace(*upd.Purpose)
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Currency != nil {
		t.Currency = *upd.Currency
	}
	if upd.Date != nil {
		t.Date = models.CalendarDate(*upd.Date)
	}
}

func validateTransaction(t *models.Transaction) error {
	if t.From == "" || t.To == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sender and receiver are required")
	}
	if !t.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !models.FitsColumn(t.Amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount allows at most 4 decimal places and 16 digits")
	}
	if !t.Currency.IsValid() {
		return apperrors.ErrInvalidCurrency
	}
	if t.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
