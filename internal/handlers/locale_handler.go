package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/i18n"
)

// GetLocale returns the message table for a language
// @Summary     Get locale
// @Description Get the en or ur message table
// @Tags        locales
// @Produce     json
// @Param       lang path string true "en or ur"
// @Success     200 {object} i18n.Locale "Locale"
// @Failure     404 {object} ErrorResponse "Unknown language"
// @Router      /locales/{lang} [get]
func GetLocale(c *gin.Context) {
	locale, ok := i18n.Get(c.Param("lang"))
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown language"))
		return
	}
	c.JSON(http.StatusOK, locale)
}

// NegotiateLocale returns the table best matching Accept-Language
// @Summary     Negotiate locale
// @Description Pick en or ur from the Accept-Language header, defaulting to en
// @Tags        locales
// @Produce     json
// @Success     200 {object} i18n.Locale "Locale"
// @Router      /locales [get]
func NegotiateLocale(c *gin.Context) {
	locale, _ := i18n.Get(i18n.Negotiate(c.GetHeader("Accept-Language")))
	c.Header("Content-Language", locale.Lang)
	c.JSON(http.StatusOK, locale)
}
