package cart

import (
	"context"

	"cocodile/internal/model"
)

// Store persists one cart record per cart id, holding the full line list.
// Saves are whole-record upserts; concurrent writers to the same id resolve
// last-writer-wins.
type Store interface {
	// Load returns the persisted lines for the cart id. A cart that was
	// never saved loads as an empty line list, not an error.
	Load(ctx context.Context, cartID string) ([]model.CartLine, error)

	// Save replaces the persisted lines for the cart id.
	Save(ctx context.Context, cartID string, lines []model.CartLine) error

	// Delete removes the cart record. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, cartID string) error
}
