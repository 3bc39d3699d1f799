// Package server assembles the HTTP API: repositories, services, handlers,
// middleware and routes on a single echo instance.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cashflow-api/internal/budget"
	"cashflow-api/internal/config"
	"cashflow-api/internal/database"
	"cashflow-api/internal/handlers"
	"cashflow-api/internal/middleware"
	"cashflow-api/internal/repositories"
	"cashflow-api/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Name is reported by the root info endpoint
const Name = "cashflow-api"

// Server owns the echo instance and the background work tied to it
type Server struct {
	echo        *echo.Echo
	cfg         *config.Config
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires every layer on top of db
func New(cfg *config.Config, db *database.DB, version string, logger *slog.Logger) (*Server, error) {
	calculator := budget.NewCalculator(cfg.Budget.DefaultAlertThreshold)
	location := cfg.Budget.Location()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewPrometheusMetrics(registry)

	categoryRepo := repositories.NewCategoryRepository(db.DB)
	periodRepo := repositories.NewBudgetPeriodRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)

	categoryService := services.NewCategoryService(categoryRepo, metrics, logger)
	budgetService := services.NewBudgetService(categoryRepo, periodRepo, transactionRepo, calculator, metrics, location, logger)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo, categoryRepo, calculator, metrics, location, logger)
	accountService := services.NewAccountService(accountRepo, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(registry)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.TraceIDHeader},
		ExposeHeaders:    []string{middleware.TraceIDHeader},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("1M"))

	registerRoutes(e, routeHandlers{
		health:       handlers.NewHealthCheckHandler(db, Name, version),
		categories:   handlers.NewCategoryHandler(categoryService, budgetService, cfg.Budget.DefaultAlertThreshold),
		budget:       handlers.NewBudgetHandler(budgetService),
		transactions: handlers.NewTransactionHandler(transactionService, budgetService),
		accounts:     handlers.NewAccountHandler(accountService),
		metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, rateLimiter.Middleware())

	return &Server{
		echo:        e,
		cfg:         cfg,
		rateLimiter: rateLimiter,
		logger:      logger,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// the configured shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go s.rateLimiter.Run(limiterCtx)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr, "env", s.cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received, draining connections", "timeout", s.cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
