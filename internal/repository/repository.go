package repository

import (
	"context"

	"cocodile/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	WholesalerID string
	Category     string
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination and optional filtering.
	GetAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist.
	// Returns error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByRetailer retrieves a retailer's orders, newest first, with an
	// optional status filter.
	ListByRetailer(ctx context.Context, retailerID, status string) ([]model.Order, error)
}

// InvoiceRepository defines the interface for invoice data access operations.
type InvoiceRepository interface {
	// CreateInvoice inserts a new invoice within the provided transaction.
	CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error

	// ListByRetailer retrieves a retailer's invoices, newest first, with an
	// optional status filter.
	ListByRetailer(ctx context.Context, retailerID, status string) ([]model.Invoice, error)
}

// WholesalerRepository defines the interface for wholesaler lookups.
type WholesalerRepository interface {
	// GetByID retrieves a wholesaler by its ID.
	GetByID(ctx context.Context, id string) (*model.Wholesaler, error)

	// GetByCode retrieves a wholesaler by its access code.
	GetByCode(ctx context.Context, code string) (*model.Wholesaler, error)
}
