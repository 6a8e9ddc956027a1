package service

import (
	"context"
	"fmt"

	"cocodile/internal/model"
	"cocodile/internal/repository"

	"github.com/rs/zerolog"
)

// invoiceService implements InvoiceService.
type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	logger      zerolog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, logger zerolog.Logger) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger.With().Str("service", "invoice").Logger(),
	}
}

// List retrieves a retailer's invoices, newest first, optionally filtered
// by status. The due amount sums DueAmount over every invoice that is not
// fully paid, regardless of the status filter applied to the listing.
func (s *invoiceService) List(ctx context.Context, retailerID, status string) ([]model.Invoice, float64, error) {
	if retailerID == "" {
		return nil, 0, fmt.Errorf("retailer ID is required")
	}

	all, err := s.invoiceRepo.ListByRetailer(ctx, retailerID, "")
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("retailer_id", retailerID).
			Msg("failed to list invoices")
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	var dueAmount float64
	invoices := make([]model.Invoice, 0, len(all))
	for _, inv := range all {
		if inv.Status != model.InvoiceStatusPaid {
			dueAmount += inv.DueAmount
		}
		if status == "" || inv.Status == status {
			invoices = append(invoices, inv)
		}
	}

	s.logger.Debug().
		Str("retailer_id", retailerID).
		Int("count", len(invoices)).
		Float64("due_amount", dueAmount).
		Msg("retrieved invoices")

	return invoices, dueAmount, nil
}
