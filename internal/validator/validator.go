// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"
	"time"

	"khata/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// DateLayouts are the accepted spellings of a transaction date.
var DateLayouts = []string{"2006-01-02", time.RFC3339}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure installs the ledger tags on v.
func Configure(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	_ = v.RegisterValidation("ledger_currency", validateCurrency)
	_ = v.RegisterValidation("user_role", validateRole)
	_ = v.RegisterValidation("ledger_date", validateDate)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// ParseDate accepts either a calendar date or an RFC3339 timestamp and
// returns the calendar date at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.CalendarDate(t), true
		}
	}
	return time.Time{}, false
}

// decimalValue lets numeric tags such as gt=0 run against decimals.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	_, ok := models.ParseCurrency(fl.Field().String())
	return ok
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).IsValid()
}

func validateDate(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}
