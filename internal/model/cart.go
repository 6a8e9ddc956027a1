package model

import "time"

// CartLine is one product entry in a retailer's cart. The product is
// embedded as a snapshot taken when the line was last touched, so upstream
// price changes do not retroactively reprice the line.
type CartLine struct {
	Product                Product         `json:"product"`
	Quantity               int             `json:"quantity"`
	SelectedQuantityOption *QuantityOption `json:"selectedQuantityOption,omitempty"`

	// Stock status, recomputed as a unit on every quantity transition.
	IsInStock      bool       `json:"isInStock"`
	AvailableStock int        `json:"availableStock"`
	RestockDate    *time.Time `json:"restockDate,omitempty"`
	ShipmentDate   *time.Time `json:"shipmentDate,omitempty"`
}

// StockStatus is the result of evaluating a requested quantity against a
// product's available stock. RestockDate and ShipmentDate are set only
// when the request cannot be covered.
type StockStatus struct {
	IsInStock      bool       `json:"isInStock"`
	AvailableStock int        `json:"availableStock"`
	RestockDate    *time.Time `json:"restockDate,omitempty"`
	ShipmentDate   *time.Time `json:"shipmentDate,omitempty"`
}
