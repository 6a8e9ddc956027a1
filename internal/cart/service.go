package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cocodile/internal/metrics"
	"cocodile/internal/model"

	"github.com/rs/zerolog"
)

// Catalog is the product-catalogue collaborator the cart reads from.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// OrderPlacer is the external order-submission collaborator. It is the
// only side-effecting boundary call the cart makes.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// View is the cart read model returned to callers.
type View struct {
	Lines         []model.CartLine `json:"lines"`
	Total         float64          `json:"total"`
	ItemCount     int              `json:"itemCount"`
	HasOutOfStock bool             `json:"hasOutOfStock"`
}

// ServiceConfig holds cart service behaviour settings.
type ServiceConfig struct {
	Pricing Pricing

	// ConfirmationDelay is how long a successful placement waits before
	// clearing the cart, so the confirmation can be observed first. Zero
	// clears immediately.
	ConfirmationDelay time.Duration
}

// Service owns cart state for all retailers, one persisted cart per
// retailer id. Mutations load the cart, apply the transition, and save;
// a failed save leaves the persisted cart as it was.
type Service struct {
	cfg       ServiceConfig
	store     Store
	catalog   Catalog
	placer    OrderPlacer
	estimator Estimator
	metrics   *metrics.CartMetrics
	logger    zerolog.Logger
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService creates a new cart service.
func NewService(
	cfg ServiceConfig,
	store Store,
	catalog Catalog,
	placer OrderPlacer,
	estimator Estimator,
	m *metrics.CartMetrics,
	logger zerolog.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		catalog:   catalog,
		placer:    placer,
		estimator: estimator,
		metrics:   m,
		logger:    logger.With().Str("service", "cart").Logger(),
		now:       time.Now,
		inFlight:  make(map[string]struct{}),
	}
}

// AddItem adds the product to the cart, incrementing the existing line's
// quantity if one exists. Stock status is evaluated for the resulting total
// quantity against the product's current stock.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int, option *model.QuantityOption) (*View, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(*product, quantity, option, s.stockFn()); err != nil {
		return nil, err
	}

	if err := s.save(ctx, cartID, c); err != nil {
		return nil, err
	}

	s.metrics.Mutation("add")
	s.logger.Debug().
		Str("cart_id", cartID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")

	return s.view(c), nil
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// Zero or less removes the line. An unknown product id is a no-op, since
// the caller may race with its own state. The product snapshot is
// refreshed from the catalogue when the product is still listed.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int, option *model.QuantityOption) (*View, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line, ok := c.Get(productID)
	if !ok {
		return s.view(c), nil
	}

	product := line.Product
	if quantity > 0 {
		current, err := s.catalog.GetByID(ctx, productID)
		switch {
		case err == nil:
			product = *current
		case errors.Is(err, model.ErrProductNotFound):
			// Delisted upstream; keep pricing against the snapshot.
		default:
			return nil, err
		}
	}

	c.SetQuantity(product, quantity, option, s.stockFn())

	if err := s.save(ctx, cartID, c); err != nil {
		return nil, err
	}

	s.metrics.Mutation("update")
	s.logger.Debug().
		Str("cart_id", cartID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart quantity updated")

	return s.view(c), nil
}

// RemoveItem deletes the line if present. Removing an absent line is
// idempotent and does not touch the store.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*View, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !c.Remove(productID) {
		return s.view(c), nil
	}

	if err := s.save(ctx, cartID, c); err != nil {
		return nil, err
	}

	s.metrics.Mutation("remove")
	s.logger.Debug().
		Str("cart_id", cartID).
		Str("product_id", productID).
		Msg("item removed from cart")

	return s.view(c), nil
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.metrics.Mutation("clear")
	s.logger.Debug().Str("cart_id", cartID).Msg("cart cleared")
	return nil
}

// Get returns the current cart view.
func (s *Service) Get(ctx context.Context, cartID string) (*View, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Review builds the checkout-review read model: lines grouped into
// shipments by wholesaler and stock bucket, each priced independently.
func (s *Service) Review(ctx context.Context, cartID string, deliveryDate *time.Time) (*Review, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	review := BuildReview(c.Lines(), deliveryDate, s.cfg.Pricing)
	return &review, nil
}

// PlaceOrder validates the cart and submits it to the order collaborator.
// It rejects locally, without calling out, when the token is missing, the
// cart is empty, any line is out of stock, or a placement for the same
// cart is already in flight. On acceptance the cart is cleared after the
// confirmation window; on rejection or cancellation the cart is left
// exactly as it was.
func (s *Service) PlaceOrder(ctx context.Context, cartID, token string, deliveryDate *time.Time, notes string) (*model.OrderResponse, error) {
	if token == "" {
		return nil, model.ErrMissingToken
	}

	if !s.beginPlacement(cartID) {
		return nil, model.ErrOrderInFlight
	}
	defer s.endPlacement(cartID)

	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, model.ErrEmptyCart
	}
	if c.HasOutOfStock() {
		return nil, model.ErrOutOfStockLines
	}

	lines := c.Lines()
	req := &model.OrderRequest{
		RetailerID:   cartID,
		Items:        make([]model.OrderItemRequest, len(lines)),
		Notes:        notes,
		DeliveryDate: deliveryDate,
	}
	for i, line := range lines {
		req.Items[i] = model.OrderItemRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
	}

	start := s.now()
	s.metrics.PlacementStarted()

	resp, err := s.placer.CreateOrder(ctx, req)
	if err != nil {
		s.metrics.PlacementFinished(start, false)
		s.logger.Warn().
			Err(err).
			Str("cart_id", cartID).
			Int("line_count", len(lines)).
			Msg("order placement failed")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	s.metrics.PlacementFinished(start, true)

	// Let the confirmation be observed before the cart visibly empties.
	if s.cfg.ConfirmationDelay > 0 {
		timer := time.NewTimer(s.cfg.ConfirmationDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			// Cancelled mid-window: leave the cart exactly as it was.
			return resp, ctx.Err()
		}
	}

	if err := s.store.Delete(context.WithoutCancel(ctx), cartID); err != nil {
		// The order is already accepted; the stale cart is an
		// inconvenience, not a placement failure.
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to clear cart after placement")
	} else {
		s.metrics.Mutation("clear")
	}

	s.logger.Info().
		Str("cart_id", cartID).
		Str("order_id", resp.Order.ID.String()).
		Int("line_count", len(lines)).
		Msg("order placed")

	return resp, nil
}

func (s *Service) beginPlacement(cartID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[cartID]; ok {
		return false
	}
	s.inFlight[cartID] = struct{}{}
	return true
}

func (s *Service) endPlacement(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, cartID)
}

func (s *Service) load(ctx context.Context, cartID string) (*Cart, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return New(lines), nil
}

func (s *Service) save(ctx context.Context, cartID string, c *Cart) error {
	if err := s.store.Save(ctx, cartID, c.Lines()); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *Service) stockFn() StockFn {
	now := s.now()
	return func(product model.Product, requested int) model.StockStatus {
		return s.estimator.Evaluate(product, requested, now)
	}
}

func (s *Service) view(c *Cart) *View {
	return &View{
		Lines:         c.Lines(),
		Total:         c.Total(),
		ItemCount:     c.ItemCount(),
		HasOutOfStock: c.HasOutOfStock(),
	}
}
