package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	Pricing     PricingConfig
	Stock       StockConfig
	Checkout    CheckoutConfig
	AccessCodes AccessCodeConfig
	S3          S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// PricingConfig holds the per-shipment pricing policy. VAT and the
// free-shipping threshold are applied per shipment, not per checkout.
type PricingConfig struct {
	VATRate               float64
	FreeShippingThreshold float64
	ShippingFee           float64
}

// StockConfig holds the restock forecast used when a cart line exceeds
// available stock.
type StockConfig struct {
	RestockLeadDays int // days from evaluation time until restock
	ShipmentLagDays int // days from restock until the line can ship
}

// CheckoutConfig holds order-placement behaviour.
type CheckoutConfig struct {
	// ConfirmationDelay is how long the placed order confirmation stays
	// visible before the cart is cleared. Zero skips the wait.
	ConfirmationDelay time.Duration
}

// AccessCodeConfig holds the wholesaler access-code registry settings.
type AccessCodeConfig struct {
	FilePaths     []string
	MinMatchCount int
}

// S3Config holds AWS S3 configuration for access-code registry files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "access-codes/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "cocodile"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Pricing: PricingConfig{
			VATRate:               getEnvAsFloat("PRICING_VAT_RATE", 0.15),
			FreeShippingThreshold: getEnvAsFloat("PRICING_FREE_SHIPPING_THRESHOLD", 780),
			ShippingFee:           getEnvAsFloat("PRICING_SHIPPING_FEE", 70),
		},
		Stock: StockConfig{
			RestockLeadDays: getEnvAsInt("STOCK_RESTOCK_LEAD_DAYS", 7),
			ShipmentLagDays: getEnvAsInt("STOCK_SHIPMENT_LAG_DAYS", 2),
		},
		Checkout: CheckoutConfig{
			ConfirmationDelay: time.Duration(getEnvAsInt("CHECKOUT_CONFIRMATION_DELAY_MS", 2000)) * time.Millisecond,
		},
		AccessCodes: AccessCodeConfig{
			FilePaths: []string{
				getEnv("ACCESS_CODE_FILE", "data/access-codes/registry.gz"),
			},
			MinMatchCount: getEnvAsInt("ACCESS_CODE_MIN_MATCH_COUNT", 1),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "access-codes/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Pricing.VATRate < 0 || c.Pricing.VATRate >= 1 {
		return fmt.Errorf("invalid VAT rate: %g (must be in [0, 1))", c.Pricing.VATRate)
	}

	if c.Pricing.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold cannot be negative")
	}

	if c.Pricing.ShippingFee < 0 {
		return fmt.Errorf("shipping fee cannot be negative")
	}

	if c.Stock.RestockLeadDays < 1 {
		return fmt.Errorf("restock lead days must be at least 1")
	}

	if c.Stock.ShipmentLagDays < 1 {
		return fmt.Errorf("shipment lag days must be at least 1")
	}

	if c.Checkout.ConfirmationDelay < 0 {
		return fmt.Errorf("checkout confirmation delay cannot be negative")
	}

	if c.AccessCodes.MinMatchCount < 1 {
		return fmt.Errorf("access code min match count must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
