package errors

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"Validation General", ValidationGeneral, "Validation failed"},
		{"Invalid Period", ValidationInvalidPeriod, "Month must be in YYYY-MM format"},
		{"Category Not Found", CategoryNotFound, "Category not found"},
		{"Category Fetch Failed", CategoryFetchFailed, "Failed to fetch categories"},
		{"Budget Threshold", BudgetInvalidThreshold, "Alert threshold must be between 0 and 1"},
		{"Account Inactive", AccountInactive, "Account is inactive"},
		{"System Internal Error", SystemInternalError, "An unexpected error occurred. Please contact support with trace ID"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_UnknownCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("UNKNOWN_999")))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	s.True(IsValidErrorCode(CategoryInvalidParent))
	s.True(IsValidErrorCode(SystemRateLimitExceeded))
	s.False(IsValidErrorCode(ErrorCode("AUTH_001")))
	s.False(IsValidErrorCode(ErrorCode("")))
}

func (s *CodesTestSuite) TestEveryCodeHasMessageAndStatus() {
	for code, message := range errorMessages {
		s.NotEmpty(message, "code %s", code)
		status := GetHTTPStatus(code)
		s.GreaterOrEqual(status, 400, "code %s", code)
		s.Less(status, 600, "code %s", code)
	}
}
