package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

var customValidations = map[string]validator.Func{
	"currency":   validateCurrency,
	"entryvalue": validateEntryValue,
}

// RegisterValidators installs the custom binding tags on gin's validator:
// currency (three upper-case letters) and entryvalue (0, 0.5 or 1).
// It panics when they cannot be installed.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("handlers: unsupported validator engine %T", binding.Validator.Engine()))
		}
		if err := registerCustomValidations(v, customValidations); err != nil {
			panic(err)
		}
	})
}

func registerCustomValidations(v *validator.Validate, validations map[string]validator.Func) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// decimalValue lets validator treat decimals as their canonical string.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validateEntryValue(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return domain.IsValidEntryValue(d)
}
