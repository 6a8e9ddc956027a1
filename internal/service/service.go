package service

import (
	"context"

	"cocodile/internal/model"
	"cocodile/internal/repository"

	"github.com/google/uuid"
)

// ProductService defines operations for product catalogue reads.
type ProductService interface {
	// GetAll retrieves products with pagination and optional filtering.
	GetAll(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// OrderService defines operations for order management. CreateOrder is the
// boundary the cart submits to.
type OrderService interface {
	// CreateOrder creates a new order, snapshotting unit prices at
	// placement time and raising the matching unpaid invoice.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves a retailer's orders, newest first, optionally
	// filtered by status.
	List(ctx context.Context, retailerID, status string) ([]model.Order, error)
}

// InvoiceService defines operations for invoice reads.
type InvoiceService interface {
	// List retrieves a retailer's invoices, newest first, optionally
	// filtered by status, along with the total outstanding due amount.
	List(ctx context.Context, retailerID, status string) ([]model.Invoice, float64, error)
}

// WholesalerService defines operations for wholesaler relationship checks.
type WholesalerService interface {
	// ValidateCode checks a wholesaler access code against the registry
	// and resolves it to the wholesaler it belongs to.
	ValidateCode(ctx context.Context, code string) (*model.Wholesaler, error)
}
