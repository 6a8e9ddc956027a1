package repository

import (
	"context"
	"fmt"

	"cocodile/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// invoiceRepository implements the InvoiceRepository interface using PostgreSQL.
type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "invoice").Logger(),
	}
}

// CreateInvoice inserts a new invoice within the provided transaction.
func (r *invoiceRepository) CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (id, order_id, retailer_id, wholesaler_id, amount, due_amount, status, issue_date, due_date, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		invoice.ID, invoice.OrderID, invoice.RetailerID, invoice.WholesalerID,
		invoice.Amount, invoice.DueAmount, invoice.Status,
		invoice.IssueDate, invoice.DueDate, invoice.PaidDate,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("invoice_id", invoice.ID.String()).
			Str("order_id", invoice.OrderID.String()).
			Msg("failed to create invoice")
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	r.logger.Debug().
		Str("invoice_id", invoice.ID.String()).
		Msg("invoice created successfully")

	return nil
}

// ListByRetailer retrieves a retailer's invoices, newest first, with an
// optional status filter.
func (r *invoiceRepository) ListByRetailer(ctx context.Context, retailerID, status string) ([]model.Invoice, error) {
	query := `
		SELECT id, order_id, retailer_id, wholesaler_id, amount, due_amount, status, issue_date, due_date, paid_date
		FROM invoices
		WHERE retailer_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY issue_date DESC
	`

	rows, err := r.pool.Query(ctx, query, retailerID, status)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("retailer_id", retailerID).
			Str("status", status).
			Msg("failed to query invoices")
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		err := rows.Scan(
			&inv.ID, &inv.OrderID, &inv.RetailerID, &inv.WholesalerID,
			&inv.Amount, &inv.DueAmount, &inv.Status,
			&inv.IssueDate, &inv.DueDate, &inv.PaidDate,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice row")
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice rows")
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
