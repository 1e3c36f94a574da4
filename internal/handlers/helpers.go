package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/middleware"
	"khata/internal/models"
	"khata/internal/validator"
)

// getEditor returns the name recorded on mutations: the profile email, or
// the session email while the profile is pending.
func getEditor(c *gin.Context) (string, error) {
	if profile, ok := middleware.GetProfile(c); ok && profile.Email != "" {
		return profile.Email, nil
	}
	if email := middleware.GetEmail(c); email != "" {
		return email, nil
	}
	if identity, ok := middleware.GetIdentity(c); ok {
		return identity, nil
	}
	return "", apperrors.ErrUnauthorized
}

// parseFilter reads the ledger filter from the query string.
func parseFilter(c *gin.Context) (ledger.Filter, error) {
	f := ledger.Filter{
		Search:   strings.TrimSpace(c.Query("search")),
		Sender:   strings.TrimSpace(c.Query("sender")),
		Receiver: strings.TrimSpace(c.Query("receiver")),
	}

	if raw := strings.TrimSpace(c.Query("currency")); raw != "" {
		currency, ok := models.ParseCurrency(raw)
		if !ok {
			return f, apperrors.ErrInvalidCurrency
		}
		f.Currency = currency
	}

	var ok bool
	if raw := strings.TrimSpace(c.Query("date_from")); raw != "" {
		if f.DateFrom, ok = validator.ParseDate(raw); !ok {
			return f, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date_from")
		}
	}
	if raw := strings.TrimSpace(c.Query("date_to")); raw != "" {
		if f.DateTo, ok = validator.ParseDate(raw); !ok {
			return f, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date_to")
		}
	}
	return f, nil
}

// bindingError maps a currency validation failure to its own code and
// everything else to INVALID_INPUT.
func bindingError(err error) error {
	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "ledger_currency" {
				return apperrors.ErrInvalidCurrency
			}
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
