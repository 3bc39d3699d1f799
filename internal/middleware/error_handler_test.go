package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "cashflow-api/internal/errors"
	"cashflow-api/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo     *echo.Echo
	registry *prometheus.Registry
	handler  echo.HTTPErrorHandler
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.registry = prometheus.NewRegistry()
	s.handler = NewHTTPErrorHandler(s.registry)
	s.echo.HTTPErrorHandler = s.handler
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) newContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")
	return c, rec
}

func (s *ErrorHandlerTestSuite) decode(rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	var resp apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *ErrorHandlerTestSuite) TestUnmatchedRouteIsBareNotFound() {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	s.echo.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"Not Found"}`, rec.Body.String())
}

func (s *ErrorHandlerTestSuite) TestEchoHTTPErrorKeepsMessage() {
	c, rec := s.newContext()

	s.handler(echo.NewHTTPError(http.StatusBadRequest, "bad month"), c)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decode(rec)
	s.Equal("Bad Request", resp.Error)
	s.Equal("bad month", resp.Message)
	s.Equal(string(apperrors.ValidationGeneral), resp.Code)
	s.Equal("test-trace-id", resp.TraceID)
}

func (s *ErrorHandlerTestSuite) TestGenericErrorHidesInternals() {
	c, rec := s.newContext()

	s.handler(errors.New("pq: relation does not exist"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), string(apperrors.SystemInternalError))
	s.NotContains(rec.Body.String(), "relation")
}

func (s *ErrorHandlerTestSuite) TestValidationErrors() {
	c, rec := s.newContext()

	type payload struct {
		Color string `json:"color" validate:"required,hex_color"`
	}
	err := validation.GetValidator().Struct(payload{Color: "red"})
	s.Require().Error(err)

	s.handler(err, c)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decode(rec)
	s.Equal(string(apperrors.ValidationGeneral), resp.Code)
	s.Require().Len(resp.Details, 1)
	s.Contains(resp.Details[0], "color")
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseUntouched() {
	c, rec := s.newContext()
	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})

	s.handler(errors.New("late failure"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *ErrorHandlerTestSuite) TestStatusMapping() {
	testCases := []struct {
		status       int
		expectedCode apperrors.ErrorCode
	}{
		{http.StatusBadRequest, apperrors.ValidationGeneral},
		{http.StatusMethodNotAllowed, apperrors.ValidationGeneral},
		{http.StatusUnprocessableEntity, apperrors.TransactionValidationFailed},
		{http.StatusTooManyRequests, apperrors.SystemRateLimitExceeded},
		{http.StatusInternalServerError, apperrors.SystemInternalError},
		{http.StatusServiceUnavailable, apperrors.SystemServiceUnavailable},
		{http.StatusTeapot, apperrors.SystemUnexpectedError},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			c, rec := s.newContext()

			s.handler(echo.NewHTTPError(tc.status), c)

			s.Equal(tc.status, rec.Code)
			s.Equal(string(tc.expectedCode), s.decode(rec).Code)
		})
	}
}

func (s *ErrorHandlerTestSuite) TestErrorsAreCounted() {
	c, _ := s.newContext()
	s.handler(errors.New("boom"), c)

	families, err := s.registry.Gather()
	s.Require().NoError(err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "api_errors_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	s.Equal(1.0, total)
}
