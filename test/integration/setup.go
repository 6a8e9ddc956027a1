package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cocodile/internal/config"
	"cocodile/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	dbConfig := config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		// Try with connection string directly
		poolConfig, parseErr := pgxpool.ParseConfig(connStr)
		if parseErr != nil {
			t.Fatalf("failed to parse connection string: %v", parseErr)
		}
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			t.Fatalf("failed to create connection pool: %v", err)
		}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS wholesalers (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) NOT NULL UNIQUE,
			address VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			manufacturer VARCHAR(255) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			sku VARCHAR(100) NOT NULL DEFAULT '',
			wholesaler_id VARCHAR(50) NOT NULL REFERENCES wholesalers(id),
			quantity_options JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS carts (
			id VARCHAR(100) PRIMARY KEY,
			lines JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			retailer_id VARCHAR(100) NOT NULL,
			wholesaler_id VARCHAR(50) NOT NULL,
			total DECIMAL(10, 2) NOT NULL,
			status VARCHAR(20) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			delivery_date TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price DECIMAL(10, 2) NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			retailer_id VARCHAR(100) NOT NULL,
			wholesaler_id VARCHAR(50) NOT NULL,
			amount DECIMAL(10, 2) NOT NULL,
			due_amount DECIMAL(10, 2) NOT NULL,
			status VARCHAR(20) NOT NULL,
			issue_date TIMESTAMP NOT NULL,
			due_date TIMESTAMP NOT NULL,
			paid_date TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_products_wholesaler_id ON products(wholesaler_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id);
		CREATE INDEX IF NOT EXISTS idx_orders_retailer_id ON orders(retailer_id);
		CREATE INDEX IF NOT EXISTS idx_invoices_retailer_id ON invoices(retailer_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedWholesalers inserts test wholesaler data into the database.
func SeedWholesalers(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	wholesalers := []struct {
		id   string
		name string
		code string
	}{
		{"W001", "Test Wholesaler 1", "WHOLESALE1"},
		{"W002", "Test Wholesaler 2", "WHOLESALE2"},
	}

	for _, w := range wholesalers {
		_, err := pool.Exec(ctx,
			"INSERT INTO wholesalers (id, name, code) VALUES ($1, $2, $3)",
			w.id, w.name, w.code,
		)
		if err != nil {
			t.Fatalf("failed to seed wholesaler %s: %v", w.id, err)
		}
	}
}

// SeedProducts inserts test product data into the database. SeedWholesalers
// must run first.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id           string
		name         string
		price        float64
		stock        int
		category     string
		wholesalerID string
	}{
		{"P001", "Test Product 1", 10.00, 100, "Category A", "W001"},
		{"P002", "Test Product 2", 20.00, 50, "Category B", "W001"},
		{"P003", "Test Product 3", 30.00, 0, "Category A", "W001"},
		{"P004", "Test Product 4", 40.00, 25, "Category C", "W002"},
		{"P005", "Test Product 5", 400.00, 10, "Category B", "W002"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, stock, category, wholesaler_id) VALUES ($1, $2, $3, $4, $5, $6)",
			p.id, p.name, p.price, p.stock, p.category, p.wholesalerID,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"invoices", "order_items", "orders", "carts", "products", "wholesalers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
