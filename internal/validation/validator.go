package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"cashflow-api/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	maxAmount = models.MaxTransactionAmount
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("transaction_amount", validateTransactionAmount)
	_ = v.RegisterValidation("threshold", validateThreshold)
	_ = v.RegisterValidation("bank_name", validateBankName)
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("transaction_source", validateTransactionSource)
	_ = v.RegisterValidation("period", validatePeriod)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns validator.ValidationErrors on failure
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Custom validation functions

// validateHexColor accepts #RRGGBB
func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorPattern.MatchString(fl.Field().String())
}

// validateMoney accepts amounts in [0, 1,000,000] with at most 2 decimal places
func validateMoney(fl validator.FieldLevel) bool {
	amount, ok := amountOf(fl.Field())
	if !ok {
		return false
	}
	return !amount.IsNegative() && !amount.GreaterThan(maxAmount) && hasCents(amount)
}

// validateTransactionAmount accepts amounts in (0, 1,000,000] with at most 2 decimal places
func validateTransactionAmount(fl validator.FieldLevel) bool {
	amount, ok := amountOf(fl.Field())
	if !ok {
		return false
	}
	return amount.IsPositive() && !amount.GreaterThan(maxAmount) && hasCents(amount)
}

// validateThreshold accepts a fraction in [0, 1]
func validateThreshold(fl validator.FieldLevel) bool {
	ratio, ok := amountOf(fl.Field())
	if !ok {
		return false
	}
	return !ratio.IsNegative() && !ratio.GreaterThan(decimal.NewFromInt(1))
}

func validateBankName(fl validator.FieldLevel) bool {
	return models.IsValidBankName(fl.Field().String())
}

func validateAccountType(fl validator.FieldLevel) bool {
	return models.IsValidAccountType(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(fl.Field().String())
}

func validateTransactionSource(fl validator.FieldLevel) bool {
	return models.IsValidTransactionSource(fl.Field().String())
}

// validatePeriod accepts a YYYY-MM month label
func validatePeriod(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

func amountOf(field reflect.Value) (decimal.Decimal, bool) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(field.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(field.Int()), true
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func hasCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// Messages turns a validation error into one "field message" entry per
// failed field. Errors that are not validation errors are returned as is.
func Messages(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s %s", fieldErr.Field(), FormatFieldError(fieldErr)))
	}
	return messages
}

// FormatFieldError converts a validator.FieldError to a human-readable message
func FormatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "alpha":
		return "must contain only alphabetic characters"
	case "hex_color":
		return "must be a hex colour in #RRGGBB form"
	case "money":
		return "must be between 0 and 1000000 with at most 2 decimal places"
	case "transaction_amount":
		return "must be greater than 0 and at most 1000000 with at most 2 decimal places"
	case "threshold":
		return "must be between 0 and 1"
	case "bank_name":
		return "must be one of: FNB NEDBANK"
	case "account_type":
		return "must be one of: CHECKING SAVINGS CREDIT_CARD"
	case "transaction_type":
		return "must be one of: DEBIT CREDIT"
	case "transaction_source":
		return "must be one of: STATEMENT POS_SCAN MANUAL"
	case "period":
		return "must be a month in YYYY-MM form"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
