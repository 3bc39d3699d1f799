package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/errors"
	"cashflow-api/internal/models"
	"cashflow-api/internal/services"
	"cashflow-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Not found errors: SendError(c, errors.CategoryNotFound)
//    - Business rule violations: SendError(c, errors.CategoryInactive)
//
// 2. SendServiceError - For errors returned by a service; known sentinels are
//    mapped to their code and everything else becomes a system error
//
// 3. SendSystemError - For system/internal errors (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Path(),
		"method", c.Request().Method,
		"error", internal,
	)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendValidationError reports request validation failures one detail per field
func SendValidationError(c echo.Context, err error) error {
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(validation.Messages(err)...))
}

// SendServiceError maps a service error onto the error catalogue
func SendServiceError(c echo.Context, err error) error {
	code, ok := serviceErrorCode(err)
	if !ok {
		return SendSystemError(c, err)
	}
	return SendError(c, code, errors.WithMessage(err.Error()))
}

func serviceErrorCode(err error) (errors.ErrorCode, bool) {
	switch {
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return errors.CategoryNotFound, true
	case stderrors.Is(err, services.ErrAccountNotFound):
		return errors.AccountNotFound, true
	case stderrors.Is(err, services.ErrTransactionNotFound):
		return errors.TransactionNotFound, true
	case stderrors.Is(err, services.ErrCategoryExists):
		return errors.CategoryAlreadyExists, true
	case stderrors.Is(err, services.ErrCategoryInactive):
		return errors.CategoryInactive, true
	case stderrors.Is(err, services.ErrAccountInactive):
		return errors.AccountInactive, true
	case stderrors.Is(err, services.ErrInvalidParent):
		return errors.CategoryInvalidParent, true
	case stderrors.Is(err, budget.ErrInvalidPeriod):
		return errors.ValidationInvalidPeriod, true
	case stderrors.Is(err, models.ErrNegativeBudget):
		return errors.BudgetInvalidAmount, true
	case stderrors.Is(err, models.ErrInvalidThreshold):
		return errors.BudgetInvalidThreshold, true
	case stderrors.Is(err, models.ErrInvalidAmount), stderrors.Is(err, models.ErrAmountTooLarge):
		return errors.TransactionInvalidAmount, true
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return errors.TransactionInvalidType, true
	case stderrors.Is(err, services.ErrValidation):
		return errors.ValidationGeneral, true
	default:
		return "", false
	}
}
