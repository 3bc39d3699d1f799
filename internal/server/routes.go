package server

import (
	"net/http"

	"cashflow-api/internal/handlers"

	"github.com/labstack/echo/v4"
)

type routeHandlers struct {
	health       *handlers.HealthCheckHandler
	categories   *handlers.CategoryHandler
	budget       *handlers.BudgetHandler
	transactions *handlers.TransactionHandler
	accounts     *handlers.AccountHandler
	metrics      http.Handler
}

// registerRoutes mounts the API. Info, health and metrics stay outside the
// rate limit so health checks and scrapes are never throttled.
func registerRoutes(e *echo.Echo, h routeHandlers, limit echo.MiddlewareFunc) {
	e.GET("/", h.health.Root)
	e.GET("/api/health", h.health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(h.metrics))

	api := e.Group("/api", limit)

	api.GET("/categories", h.categories.ListCategories)
	api.POST("/categories", h.categories.CreateCategory)
	api.GET("/categories/:id", h.categories.GetCategory)
	api.PUT("/categories/:id", h.categories.UpdateCategory)
	api.DELETE("/categories/:id", h.categories.DeactivateCategory)
	api.GET("/categories/:id/status", h.budget.GetCategoryStatus)
	api.PUT("/categories/:id/budget", h.budget.UpdateBudget)

	api.GET("/budget/status", h.budget.GetStatuses)
	api.GET("/budget/summary", h.budget.GetSummary)

	api.GET("/transactions", h.transactions.ListTransactions)
	api.POST("/transactions", h.transactions.CreateTransaction)
	api.GET("/transactions/:id", h.transactions.GetTransaction)

	api.GET("/accounts", h.accounts.ListAccounts)
	api.POST("/accounts", h.accounts.CreateAccount)
	api.GET("/accounts/:id", h.accounts.GetAccount)
}
