package repository

import (
	"context"
	"fmt"

	"cocodile/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// wholesalerRepository implements the WholesalerRepository interface using PostgreSQL.
type wholesalerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWholesalerRepository creates a new PostgreSQL-backed wholesaler repository.
func NewWholesalerRepository(pool *pgxpool.Pool, logger zerolog.Logger) WholesalerRepository {
	return &wholesalerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wholesaler").Logger(),
	}
}

// GetByID retrieves a wholesaler by its ID.
func (r *wholesalerRepository) GetByID(ctx context.Context, id string) (*model.Wholesaler, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode retrieves a wholesaler by its access code.
func (r *wholesalerRepository) GetByCode(ctx context.Context, code string) (*model.Wholesaler, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

func (r *wholesalerRepository) getOne(ctx context.Context, where string, arg any) (*model.Wholesaler, error) {
	query := `
		SELECT id, name, code, address, phone, email
		FROM wholesalers
	` + where

	var w model.Wholesaler
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&w.ID, &w.Name, &w.Code, &w.Address, &w.Phone, &w.Email,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query wholesaler")
		return nil, fmt.Errorf("failed to query wholesaler: %w", err)
	}

	return &w, nil
}
