package model

import "time"

// Product represents a wholesaler-owned product in the catalogue.
type Product struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Description     string           `json:"description,omitempty" db:"description"`
	Price           float64          `json:"price" db:"price"`
	Stock           int              `json:"stock" db:"stock"`
	Manufacturer    string           `json:"manufacturer,omitempty" db:"manufacturer"`
	Category        string           `json:"category,omitempty" db:"category"`
	SKU             string           `json:"sku,omitempty" db:"sku"`
	WholesalerID    string           `json:"wholesalerId" db:"wholesaler_id"`
	QuantityOptions []QuantityOption `json:"quantityOptions,omitempty" db:"quantity_options"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
}

// QuantityOption is a presentational bundling of boxes to tablets,
// e.g. "01 Box - 30 Tablets". It never changes the unit price; the cart
// only records which bundling the retailer chose.
type QuantityOption struct {
	Boxes   int    `json:"boxes"`
	Tablets int    `json:"tablets"`
	Label   string `json:"label"`
}

// Wholesaler represents a supplier the retailer orders from.
type Wholesaler struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Code    string `json:"code" db:"code"`
	Address string `json:"address,omitempty" db:"address"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Email   string `json:"email,omitempty" db:"email"`
}
