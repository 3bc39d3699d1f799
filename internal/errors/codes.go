package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
	ValidationInvalidPeriod ErrorCode = "VALIDATION_006"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryInactive      ErrorCode = "CATEGORY_002"
	CategoryAlreadyExists ErrorCode = "CATEGORY_003"
	CategoryInvalidParent ErrorCode = "CATEGORY_004"
	CategoryFetchFailed   ErrorCode = "CATEGORY_005"
)

// Budget error codes (BUDGET_*)
const (
	BudgetInvalidAmount     ErrorCode = "BUDGET_001"
	BudgetInvalidThreshold  ErrorCode = "BUDGET_002"
	BudgetComputationFailed ErrorCode = "BUDGET_003"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound         ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount    ErrorCode = "TRANSACTION_002"
	TransactionInvalidType      ErrorCode = "TRANSACTION_003"
	TransactionValidationFailed ErrorCode = "TRANSACTION_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountInactive      ErrorCode = "ACCOUNT_002"
	AccountInvalidNumber ErrorCode = "ACCOUNT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidPeriod: "Month must be in YYYY-MM format",

	// Category errors
	CategoryNotFound:      "Category not found",
	CategoryInactive:      "Category is inactive",
	CategoryAlreadyExists: "A category with this id already exists",
	CategoryInvalidParent: "Parent category does not exist",
	CategoryFetchFailed:   "Failed to fetch categories",

	// Budget errors
	BudgetInvalidAmount:     "Monthly budget must be between 0 and 1,000,000",
	BudgetInvalidThreshold:  "Alert threshold must be between 0 and 1",
	BudgetComputationFailed: "Failed to compute budget status",

	// Transaction errors
	TransactionNotFound:         "Transaction not found",
	TransactionInvalidAmount:    "Invalid transaction amount",
	TransactionInvalidType:      "Invalid transaction type",
	TransactionValidationFailed: "Transaction validation failed",

	// Account errors
	AccountNotFound:      "Account not found",
	AccountInactive:      "Account is inactive",
	AccountInvalidNumber: "Account number must be the last 4 digits",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
