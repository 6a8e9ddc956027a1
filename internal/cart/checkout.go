package cart

import (
	"fmt"
	"time"

	"cocodile/internal/model"
)

// Pricing holds the per-shipment pricing policy. The VAT rate and the
// free-shipping threshold apply to each shipment independently, so a
// checkout split across shipments can be charged differently from the same
// lines in a single shipment. That non-linearity is the agreed business
// behaviour, not an accident of this implementation.
type Pricing struct {
	VATRate               float64
	FreeShippingThreshold float64
	ShippingFee           float64
}

// DefaultPricing returns the standard pricing policy.
func DefaultPricing() Pricing {
	return Pricing{
		VATRate:               0.15,
		FreeShippingThreshold: 780,
		ShippingFee:           70,
	}
}

// Breakdown is the price breakdown for one shipment.
type Breakdown struct {
	Amount     float64 `json:"amount"`
	VAT        float64 `json:"vat"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

// breakdown prices a shipment amount. An amount at or above the threshold
// ships free; anything below pays the flat fee.
func (p Pricing) breakdown(amount float64) Breakdown {
	vat := amount * p.VATRate
	shipping := p.ShippingFee
	if amount >= p.FreeShippingThreshold {
		shipping = 0
	}
	return Breakdown{
		Amount:     amount,
		VAT:        vat,
		Shipping:   shipping,
		GrandTotal: amount + vat + shipping,
	}
}

// Shipment is a checkout-time grouping of cart lines sharing a wholesaler
// and stock bucket, priced independently. It is derived at review time and
// never persisted.
type Shipment struct {
	ID           string           `json:"id"`
	WholesalerID string           `json:"wholesalerId"`
	InStock      bool             `json:"inStock"`
	DeliveryDate *time.Time       `json:"deliveryDate,omitempty"`
	Lines        []model.CartLine `json:"lines"`
	Breakdown    Breakdown        `json:"breakdown"`
}

// Review is the checkout-review read model: every shipment with its price
// breakdown, the checkout-wide grand total (sum of per-shipment grand
// totals), and whether any line blocks placement.
type Review struct {
	Shipments     []Shipment `json:"shipments"`
	GrandTotal    float64    `json:"grandTotal"`
	HasOutOfStock bool       `json:"hasOutOfStock"`
}

// BuildReview partitions the cart lines into shipments keyed by
// (wholesaler, stock bucket), in order of first appearance, and prices each
// one. In-stock shipments carry the retailer's selected delivery date;
// out-of-stock shipments carry their lines' forecast shipment date.
func BuildReview(lines []model.CartLine, deliveryDate *time.Time, pricing Pricing) Review {
	var (
		order  []string
		groups = make(map[string]*Shipment)
	)

	for _, line := range lines {
		key := shipmentKey(line.Product.WholesalerID, line.IsInStock)
		group, ok := groups[key]
		if !ok {
			date := deliveryDate
			if !line.IsInStock && line.ShipmentDate != nil {
				date = line.ShipmentDate
			}
			group = &Shipment{
				ID:           key,
				WholesalerID: line.Product.WholesalerID,
				InStock:      line.IsInStock,
				DeliveryDate: date,
			}
			groups[key] = group
			order = append(order, key)
		}
		group.Lines = append(group.Lines, line)
	}

	review := Review{Shipments: make([]Shipment, 0, len(order))}
	for _, key := range order {
		group := groups[key]

		var amount float64
		for _, line := range group.Lines {
			amount += line.Product.Price * float64(line.Quantity)
		}
		group.Breakdown = pricing.breakdown(amount)

		review.GrandTotal += group.Breakdown.GrandTotal
		if !group.InStock {
			review.HasOutOfStock = true
		}
		review.Shipments = append(review.Shipments, *group)
	}

	return review
}

func shipmentKey(wholesalerID string, inStock bool) string {
	bucket := "out-of-stock"
	if inStock {
		bucket = "in-stock"
	}
	return fmt.Sprintf("%s-%s", wholesalerID, bucket)
}
