package cart

import (
	"time"

	"cocodile/internal/model"
)

// Estimator derives stock availability and a restock forecast for a
// requested quantity. Implementations must guarantee that when the request
// cannot be covered, RestockDate is strictly after the evaluation time and
// ShipmentDate strictly after RestockDate.
type Estimator interface {
	Evaluate(product model.Product, requestedQuantity int, now time.Time) model.StockStatus
}

// leadTimeEstimator is the default estimator: a fixed restock lead time
// from evaluation, plus a fixed lag from restock until shipment. It stands
// in for a real wholesaler replenishment forecast.
type leadTimeEstimator struct {
	restockLead time.Duration
	shipmentLag time.Duration
}

// NewLeadTimeEstimator creates the default fixed-lead-time estimator.
// Both day counts must be at least 1.
func NewLeadTimeEstimator(restockLeadDays, shipmentLagDays int) Estimator {
	if restockLeadDays < 1 {
		restockLeadDays = 1
	}
	if shipmentLagDays < 1 {
		shipmentLagDays = 1
	}
	return &leadTimeEstimator{
		restockLead: time.Duration(restockLeadDays) * 24 * time.Hour,
		shipmentLag: time.Duration(shipmentLagDays) * 24 * time.Hour,
	}
}

// Evaluate reports in-stock when available stock covers the requested
// quantity. Otherwise it forecasts restock and shipment dates relative to
// the evaluation time, so re-evaluating the same line later yields a later
// window.
func (e *leadTimeEstimator) Evaluate(product model.Product, requestedQuantity int, now time.Time) model.StockStatus {
	if product.Stock >= requestedQuantity {
		return model.StockStatus{
			IsInStock:      true,
			AvailableStock: product.Stock,
		}
	}

	restock := now.Add(e.restockLead)
	shipment := restock.Add(e.shipmentLag)
	return model.StockStatus{
		IsInStock:      false,
		AvailableStock: product.Stock,
		RestockDate:    &restock,
		ShipmentDate:   &shipment,
	}
}
