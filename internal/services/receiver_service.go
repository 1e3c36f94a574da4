package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "khata/internal/errors"
	"khata/internal/models"
)

type receiverService struct {
	db *gorm.DB
}

// NewReceiverService creates a new ReceiverServicer.
func NewReceiverService(db *gorm.DB) ReceiverServicer {
	return &receiverService{db: db}
}

// Increment creates the counter for name at 1 or adds 1 to it. Names that
// differ only in case or surrounding space share a counter.
func (s *receiverService) Increment(tx *gorm.DB, name string) error {
	key := models.ReceiverKey(name)
	if key == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "receiver is required")
	}

	now := time.Now().UTC()
	receiver := &models.Receiver{
		ID:         key,
		Name:       strings.TrimSpace(name),
		UsageCount: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"usage_count": gorm.Expr("receivers.usage_count + 1"),
			"updated_at":  now,
		}),
	}).Create(receiver).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListReceivers returns counters, most used first.
func (s *receiverService) ListReceivers(ctx context.Context) ([]models.Receiver, error) {
	receivers := make([]models.Receiver, 0)
	if err := s.db.WithContext(ctx).
		Order("usage_count DESC").
		Order("name ASC").
		Find(&receivers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return receivers, nil
}
