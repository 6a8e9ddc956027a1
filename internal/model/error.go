package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidProduct    = "INVALID_PRODUCT"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeOutOfStockLines   = "OUT_OF_STOCK_LINES"
	ErrCodeMissingToken      = "MISSING_TOKEN"
	ErrCodeOrderInFlight     = "ORDER_IN_FLIGHT"
	ErrCodeInvalidAccessCode = "INVALID_ACCESS_CODE"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidProduct    = NewDomainError(ErrCodeInvalidProduct, "Product must carry a wholesaler and a non-negative stock count")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrOutOfStockLines   = NewDomainError(ErrCodeOutOfStockLines, "Cannot place order with out of stock items. Please remove them first.")
	ErrMissingToken      = NewDomainError(ErrCodeMissingToken, "Please login to place an order")
	ErrOrderInFlight     = NewDomainError(ErrCodeOrderInFlight, "An order is already being placed for this cart")
	ErrInvalidAccessCode = NewDomainError(ErrCodeInvalidAccessCode, "Invalid wholesaler access code")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)
