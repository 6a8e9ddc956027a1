package repository

import (
	"context"
	"fmt"
	"time"

	"cocodile/internal/cart"
	"cocodile/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements cart.Store using PostgreSQL. Each cart is one
// row with the full line list as JSONB; saves are whole-record upserts, so
// concurrent writers to the same cart resolve last-writer-wins.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart store.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) cart.Store {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Load returns the persisted lines for the cart id. A cart that was never
// saved loads as an empty line list.
func (r *cartRepository) Load(ctx context.Context, cartID string) ([]model.CartLine, error) {
	query := `
		SELECT lines
		FROM carts
		WHERE id = $1
	`

	var lines []model.CartLine
	err := r.pool.QueryRow(ctx, query, cartID).Scan(&lines)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return lines, nil
}

// Save replaces the persisted lines for the cart id.
func (r *cartRepository) Save(ctx context.Context, cartID string, lines []model.CartLine) error {
	query := `
		INSERT INTO carts (id, lines, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET lines = EXCLUDED.lines, updated_at = EXCLUDED.updated_at
	`

	if lines == nil {
		lines = []model.CartLine{}
	}

	_, err := r.pool.Exec(ctx, query, cartID, lines, time.Now())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID).
			Int("line_count", len(lines)).
			Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID).
		Int("line_count", len(lines)).
		Msg("cart saved")

	return nil
}

// Delete removes the cart record. Deleting an absent cart is a no-op.
func (r *cartRepository) Delete(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
