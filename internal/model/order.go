package model

import (
	"time"

	"github.com/google/uuid"
)

// Order status lifecycle values.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a retailer order placed with a wholesaler.
type Order struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RetailerID   string     `json:"retailerId" db:"retailer_id"`
	WholesalerID string     `json:"wholesalerId" db:"wholesaler_id"`
	Total        float64    `json:"total" db:"total"`
	Status       string     `json:"status" db:"status"`
	Notes        string     `json:"notes,omitempty" db:"notes"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty" db:"delivery_date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Price and Subtotal are
// snapshots taken at placement time.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	Subtotal  float64   `json:"subtotal" db:"subtotal"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	RetailerID   string             `json:"-"`
	Items        []OrderItemRequest `json:"items"`
	Notes        string             `json:"notes,omitempty"`
	DeliveryDate *time.Time         `json:"deliveryDate,omitempty"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order    Order       `json:"order"`
	Items    []OrderItem `json:"items"`
	Products []Product   `json:"products"`
}

// Invoice represents the billing record raised against an order.
type Invoice struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	OrderID      uuid.UUID  `json:"orderId" db:"order_id"`
	RetailerID   string     `json:"retailerId" db:"retailer_id"`
	WholesalerID string     `json:"wholesalerId" db:"wholesaler_id"`
	Amount       float64    `json:"amount" db:"amount"`
	DueAmount    float64    `json:"dueAmount" db:"due_amount"`
	Status       string     `json:"status" db:"status"`
	IssueDate    time.Time  `json:"issueDate" db:"issue_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	PaidDate     *time.Time `json:"paidDate,omitempty" db:"paid_date"`
}

// Invoice status values.
const (
	InvoiceStatusPaid    = "paid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusUnpaid  = "unpaid"
)
