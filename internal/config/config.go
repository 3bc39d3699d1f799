package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultCORSOrigin = "http://localhost:3000"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Budget    BudgetConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
	Seed            bool
}

type BudgetConfig struct {
	DefaultAlertThreshold decimal.Decimal
	WarningRatio          decimal.Decimal
	ExceededRatio         decimal.Decimal
	Locale                string
	CurrencySymbol        string
	Timezone              string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "cashflow"),
			Password:        getEnv("DB_PASSWORD", "cashflow"),
			Name:            getEnv("DB_NAME", "cashflow"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", filepath.Join("data", "cashflow.db")),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", true),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
			Seed:            getBoolEnv("DB_SEED", false),
		},
		Budget: BudgetConfig{
			DefaultAlertThreshold: getDecimalEnv("BUDGET_DEFAULT_ALERT_THRESHOLD", decimal.NewFromFloat(0.8)),
			WarningRatio:          getDecimalEnv("BUDGET_WARNING_RATIO", decimal.NewFromFloat(0.8)),
			ExceededRatio:         getDecimalEnv("BUDGET_EXCEEDED_RATIO", decimal.NewFromInt(1)),
			Locale:                getEnv("BUDGET_LOCALE", "en-ZA"),
			CurrencySymbol:        getEnv("BUDGET_CURRENCY_SYMBOL", "R"),
			Timezone:              getEnv("BUDGET_TIMEZONE", "UTC"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("RATE_LIMIT_PER_SECOND", 20),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}

	config.Server.CORSAllowOrigins = loadCORSAllowOrigins()

	return config
}

// Validate rejects settings the rest of the application cannot work with
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}

	one := decimal.NewFromInt(1)
	b := c.Budget
	if b.DefaultAlertThreshold.IsNegative() || b.DefaultAlertThreshold.GreaterThan(one) {
		errs = append(errs, errors.New("BUDGET_DEFAULT_ALERT_THRESHOLD must be between 0 and 1"))
	}
	if b.WarningRatio.IsNegative() {
		errs = append(errs, errors.New("BUDGET_WARNING_RATIO must not be negative"))
	}
	if !b.ExceededRatio.IsPositive() {
		errs = append(errs, errors.New("BUDGET_EXCEEDED_RATIO must be positive"))
	}
	if b.WarningRatio.GreaterThan(b.ExceededRatio) {
		errs = append(errs, errors.New("BUDGET_WARNING_RATIO must not exceed BUDGET_EXCEEDED_RATIO"))
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid BUDGET_TIMEZONE %q: %w", b.Timezone, err))
	}

	if c.IsProduction() && slices.Contains(c.Server.CORSAllowOrigins, "*") {
		errs = append(errs, errors.New("CORS_ALLOW_ORIGINS must list explicit origins in production"))
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit values must be positive"))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Location returns the timezone budget months are evaluated in
func (b BudgetConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres connection URL used by the migration runner
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns the web client default
func loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if corsOrigins == "" {
		return []string{defaultCORSOrigin}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	log.Printf("CORS allowed origins configured: %v", origins)
	return origins
}
