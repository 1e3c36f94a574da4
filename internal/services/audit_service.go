package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/live"
	"khata/internal/logger"
	"khata/internal/models"
)

// auditService appends and reads the audit trail. It exposes no way to
// change or remove an entry.
type auditService struct {
	db    *gorm.DB
	hub   *live.Hub[[]models.AuditLog]
	pubMu sync.Mutex
	now   func() time.Time
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{
		db:  db,
		hub: live.NewHub[[]models.AuditLog](),
		now: time.Now,
	}
}

// Record appends an entry using tx so it commits or rolls back together with
// the mutation it describes. before and after may be nil.
func (s *auditService) Record(tx *gorm.DB, action models.AuditAction, entityType models.EntityType, entityID, performedBy string, before, after any) error {
	beforeSnap, err := models.NewSnapshot(before)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	afterSnap, err := models.NewSnapshot(after)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entry := &models.AuditLog{
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		PerformedBy:  performedBy,
		PerformedAt:  s.now().UTC(),
		BeforeValues: beforeSnap,
		AfterValues:  afterSnap,
	}
	if err := tx.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListLogs returns entries newest first.
func (s *auditService) ListLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}

	logs := make([]models.AuditLog, 0)
	if err := q.Order("performed_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}

// Subscribe delivers the full trail to fn now and after every append.
func (s *auditService) Subscribe(ctx context.Context, fn func([]models.AuditLog)) (func(), error) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	current, err := s.ListLogs(ctx, AuditFilter{})
	if err != nil {
		return nil, err
	}
	fn(current)
	return s.hub.Subscribe(fn), nil
}

// Refresh publishes the current trail to subscribers.
func (s *auditService) Refresh(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if s.hub.Len() == 0 {
		return
	}
	current, err := s.ListLogs(ctx, AuditFilter{})
	if err != nil {
		logger.Get().Errorw("failed to load audit logs for subscribers", "error", err)
		return
	}
	s.hub.Publish(current)
}
