package cart

import (
	"cocodile/internal/model"
)

// StockFn evaluates a requested quantity against a product's stock. The
// aggregate never computes stock status itself; callers supply the policy
// (see Estimator) so the two stay decoupled.
type StockFn func(product model.Product, requestedQuantity int) model.StockStatus

// Cart is the aggregate of a retailer's cart lines. Lines are kept in
// insertion order with at most one line per product id. All mutators either
// fully apply or leave the cart untouched.
type Cart struct {
	lines []model.CartLine
}

// New creates a cart from a previously persisted line list. A nil slice
// yields an empty cart.
func New(lines []model.CartLine) *Cart {
	c := &Cart{lines: make([]model.CartLine, len(lines))}
	copy(c.lines, lines)
	return c
}

// AddItem inserts a line for the product or, if one already exists,
// increments its quantity. Stock status is evaluated against the resulting
// total quantity. The product snapshot embedded in the line is refreshed
// from the supplied product. Adding beyond available stock is allowed; the
// line is simply marked out of stock (backorder policy).
func (c *Cart) AddItem(product model.Product, quantity int, option *model.QuantityOption, stock StockFn) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if product.WholesalerID == "" || product.Stock < 0 {
		return model.ErrInvalidProduct
	}

	idx := c.indexOf(product.ID)
	if idx >= 0 {
		existing := c.lines[idx]
		newQuantity := existing.Quantity + quantity
		if option == nil {
			option = existing.SelectedQuantityOption
		}
		c.lines[idx] = newLine(product, newQuantity, option, stock)
		return nil
	}

	c.lines = append(c.lines, newLine(product, quantity, option, stock))
	return nil
}

// SetQuantity sets the line's quantity to the given absolute value. A
// quantity of zero or less removes the line. The supplied product refreshes
// the line's snapshot; the quantity option is replaced only when a new one
// is given. Returns false when no line exists for the product id.
func (c *Cart) SetQuantity(product model.Product, quantity int, option *model.QuantityOption, stock StockFn) bool {
	idx := c.indexOf(product.ID)
	if idx < 0 {
		return false
	}

	if quantity <= 0 {
		c.Remove(product.ID)
		return true
	}

	if option == nil {
		option = c.lines[idx].SelectedQuantityOption
	}
	c.lines[idx] = newLine(product, quantity, option, stock)
	return true
}

// Remove deletes the line for the product id. Removing an absent line is a
// no-op; the call is idempotent.
func (c *Cart) Remove(productID string) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return true
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// Get returns the line for the product id, if present.
func (c *Cart) Get(productID string) (model.CartLine, bool) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return model.CartLine{}, false
	}
	return c.lines[idx], true
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	lines := make([]model.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Total returns the sum of price × quantity over all lines, including out
// of stock ones. No rounding is applied; currency formatting is a
// presentation concern.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount returns the total unit count across all lines, not the number
// of distinct lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// HasOutOfStock reports whether any line is out of stock.
func (c *Cart) HasOutOfStock() bool {
	for _, line := range c.lines {
		if !line.IsInStock {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// newLine builds a line with all stock fields evaluated together for the
// given quantity. They are never set individually.
func newLine(product model.Product, quantity int, option *model.QuantityOption, stock StockFn) model.CartLine {
	status := stock(product, quantity)
	return model.CartLine{
		Product:                product,
		Quantity:               quantity,
		SelectedQuantityOption: option,
		IsInStock:              status.IsInStock,
		AvailableStock:         status.AvailableStock,
		RestockDate:            status.RestockDate,
		ShipmentDate:           status.ShipmentDate,
	}
}
