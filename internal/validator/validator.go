// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"wheresmymoney/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("period_type", validatePeriodType)
		_ = v.RegisterValidation("period_token", validatePeriodToken)
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("date_only", validateDateOnly)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	}
}

// decimalValue lets string tags such as money run on decimal.Decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validatePeriodType accepts a stored category type: exactly W, M or Y.
func validatePeriodType(fl validator.FieldLevel) bool {
	return models.PeriodType(fl.Field().String()).Valid()
}

// validatePeriodToken accepts a report period from user input, in any case.
func validatePeriodToken(fl validator.FieldLevel) bool {
	token := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return models.PeriodType(token).Valid()
}

// validateMoney accepts a decimal that fits numeric(10,2).
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Truncate(2)) && d.Abs().LessThan(decimal.New(1, 8))
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}
