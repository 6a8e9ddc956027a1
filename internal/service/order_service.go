package service

import (
	"context"
	"fmt"
	"time"

	"cocodile/internal/model"
	"cocodile/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// invoiceDueTerm is how long after issue an invoice falls due.
const invoiceDueTerm = 30 * 24 * time.Hour

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder creates a new order with unit prices snapshotted at placement
// time, plus the matching unpaid invoice, in a single transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	productsByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	now := time.Now()
	order := &model.Order{
		ID:           uuid.New(),
		RetailerID:   req.RetailerID,
		WholesalerID: productsByID[req.Items[0].ProductID].WholesalerID,
		Status:       model.OrderStatusPending,
		Notes:        req.Notes,
		DeliveryDate: req.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	orderItems := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		product := productsByID[item.ProductID]
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Subtotal:  product.Price * float64(item.Quantity),
		}
		order.Total += orderItems[i].Subtotal
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	invoice := &model.Invoice{
		ID:           uuid.New(),
		OrderID:      order.ID,
		RetailerID:   order.RetailerID,
		WholesalerID: order.WholesalerID,
		Amount:       order.Total,
		DueAmount:    order.Total,
		Status:       model.InvoiceStatusUnpaid,
		IssueDate:    now,
		DueDate:      now.Add(invoiceDueTerm),
	}

	if err = s.invoiceRepo.CreateInvoice(ctx, tx, invoice); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create invoice")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("retailer_id", order.RetailerID).
		Int("item_count", len(orderItems)).
		Float64("total", order.Total).
		Msg("order created successfully")

	return &model.OrderResponse{
		Order:    *order,
		Items:    orderItems,
		Products: products,
	}, nil
}

// GetByID retrieves an order by its ID with all items and product details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	return &model.OrderResponse{
		Order:    *order,
		Items:    items,
		Products: products,
	}, nil
}

// List retrieves a retailer's orders, newest first, optionally filtered by status.
func (s *orderService) List(ctx context.Context, retailerID, status string) ([]model.Order, error) {
	if retailerID == "" {
		return nil, fmt.Errorf("retailer ID is required")
	}

	orders, err := s.orderRepo.ListByRetailer(ctx, retailerID, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("retailer_id", retailerID).
			Str("status", status).
			Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if req.RetailerID == "" {
		return fmt.Errorf("retailer ID is required")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
