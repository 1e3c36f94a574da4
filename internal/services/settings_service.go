package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "khata/internal/errors"
	"khata/internal/live"
	"khata/internal/logger"
	"khata/internal/models"
)

// settingsService manages the singleton conversion-rate row.
type settingsService struct {
	db          *gorm.DB
	defaultRate decimal.Decimal
	hub         *live.Hub[models.Settings]
	pubMu       sync.Mutex
	now         func() time.Time
}

// NewSettingsService creates a new SettingsServicer. defaultRate is reported
// until a rate has been saved.
func NewSettingsService(db *gorm.DB, defaultRate decimal.Decimal) SettingsServicer {
	return &settingsService{
		db:          db,
		defaultRate: defaultRate,
		hub:         live.NewHub[models.Settings](),
		now:         time.Now,
	}
}

// GetSettings returns the stored row or the defaults.
func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).Where("id = ?", models.CurrencySettingsID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSettings(s.defaultRate)
		return &def, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateRate overwrites the shared rate. Stored amounts are not touched.
func (s *settingsService) UpdateRate(ctx context.Context, rate decimal.Decimal, editor string) (*models.Settings, error) {
	if !rate.IsPositive() || !models.FitsColumn(rate) {
		return nil, apperrors.ErrInvalidRate
	}

	settings := &models.Settings{
		ID:           models.CurrencySettingsID,
		KWDToPKRRate: rate,
		UpdatedBy:    editor,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(*settings)
	return settings, nil
}

// Subscribe delivers the current settings to fn now and after every update.
func (s *settingsService) Subscribe(ctx context.Context, fn func(models.Settings)) (func(), error) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	fn(*current)
	return s.hub.Subscribe(fn), nil
}

func (s *settingsService) publish(settings models.Settings) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	logger.Get().Infow("conversion rate updated", "rate", settings.KWDToPKRRate.String(), "updated_by", settings.UpdatedBy)
	s.hub.Publish(settings)
}
