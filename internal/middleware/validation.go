package middleware

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var setupValidatorOnce sync.Once

// SetupValidator configures gin's validator: JSON field names in errors,
// decimal.Decimal fields validated by value, and the decimalgt0 tag.
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		// A zero decimal reads as empty, so `required` rejects zero amounts.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok && !d.IsZero() {
				return d.String()
			}
			return ""
		}, decimal.Decimal{})
		_ = v.RegisterValidation("decimalgt0", decimalGreaterThanZero)
	})
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

// ValidationMessage turns binding errors into a single readable line.
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request format: " + err.Error()
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, e.Field()+": "+fieldMessage(e))
	}
	return "Request validation failed: " + strings.Join(msgs, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "decimalgt0":
		return "must be a number greater than zero"
	case "max":
		return "must be at most " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "invalid value"
	}
}
