package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"cashflow-api/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type stubChecker struct {
	err error
}

func (s stubChecker) HealthCheck(context.Context) error {
	return s.err
}

type HealthHandlerSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *HealthHandlerSuite) SetupTest() {
	s.echo = echo.New()
}

func TestHealthHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerSuite))
}

func (s *HealthHandlerSuite) TestRoot() {
	handler := NewHealthCheckHandler(stubChecker{}, "cashflow-api", "1.0.0")
	c, rec := newTestContext(s.echo, http.MethodGet, "/", nil)

	s.Require().NoError(handler.Root(c))
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("cashflow-api", body["name"])
	s.Equal("1.0.0", body["version"])
	s.Equal("healthy", body["status"])
	s.NotEmpty(body["timestamp"])
}

func (s *HealthHandlerSuite) TestHealthCheck_OK() {
	handler := NewHealthCheckHandler(stubChecker{}, "cashflow-api", "1.0.0")
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/health", nil)

	s.Require().NoError(handler.HealthCheck(c))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HealthHandlerSuite) TestHealthCheck_DatabaseDown() {
	handler := NewHealthCheckHandler(stubChecker{err: fmt.Errorf("dial tcp: refused")}, "cashflow-api", "1.0.0")
	c, rec := newTestContext(s.echo, http.MethodGet, "/api/health", nil)

	s.Require().NoError(handler.HealthCheck(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal(string(errors.SystemServiceUnavailable), decodeError(rec).Code)
}
