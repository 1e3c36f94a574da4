package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
	"khata/internal/forex"
	"khata/internal/models"
	"khata/internal/services"
)

// RateQuoter looks up the market KWD to PKR rate.
type RateQuoter interface {
	KWDToPKR(ctx context.Context) (*forex.Quote, error)
}

// SettingsHandler handles the shared conversion rate.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	quoter          RateQuoter
}

// NewSettingsHandler creates a new SettingsHandler. quoter may be nil when
// the reference rate is disabled.
func NewSettingsHandler(settingsService services.SettingsServicer, quoter RateQuoter) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, quoter: quoter}
}

// UpdateRateRequest represents the payload for changing the rate
type UpdateRateRequest struct {
	KWDToPKRRate decimal.Decimal `json:"kwd_to_pkr_rate" binding:"required,gt=0" swaggertype:"string"`
}

// ReferenceRateResponse pairs the stored rate with a market quote.
type ReferenceRateResponse struct {
	Stored *models.Settings `json:"stored"`
	Market *forex.Quote     `json:"market"`
}

// GetSettings returns the currency settings
// @Summary     Get currency settings
// @Description Get the KWD to PKR rate used for display totals
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Settings "Settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/currency [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings changes the rate
// @Summary     Update currency settings
// @Description Overwrite the KWD to PKR rate. Stored amounts are never changed. Admin only.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateRateRequest true "New rate"
// @Success     200 {object} models.Settings "Settings updated"
// @Failure     400 {object} ErrorResponse "Invalid rate"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/currency [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	editor, err := getEditor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidRate, err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateRate(c.Request.Context(), req.KWDToPKRRate, editor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// StreamSettings pushes the settings on every change
// @Summary     Stream currency settings
// @Description Server-sent events carrying the settings, sent now and after every change
// @Tags        settings
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {object} models.Settings "snapshot events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/currency/stream [get]
func (h *SettingsHandler) StreamSettings(c *gin.Context) {
	streamSnapshots(c, "settings", h.settingsService.Subscribe, func(s models.Settings) (any, error) {
		return gin.H{"settings": s}, nil
	})
}

// GetReferenceRate returns the market quote next to the stored rate
// @Summary     Reference market rate
// @Description Fetch the current KWD to PKR market quote. Informational only; the stored rate is not changed. Admin only.
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ReferenceRateResponse "Stored and market rate"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     503 {object} ErrorResponse "Reference rate unavailable"
// @Router      /settings/currency/reference [get]
func (h *SettingsHandler) GetReferenceRate(c *gin.Context) {
	if h.quoter == nil {
		respondWithError(c, apperrors.ErrForexUnavailable)
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	quote, err := h.quoter.KWDToPKR(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrForexUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, ReferenceRateResponse{Stored: settings, Market: quote})
}
