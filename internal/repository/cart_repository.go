package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmart/internal/database"
	"localmart/internal/model"

	"github.com/rs/zerolog"
)

// cartRepository implements CartRepository on the embedded store.
type cartRepository struct {
	store  *database.Store
	logger zerolog.Logger
}

// NewCartRepository creates a new store-backed cart repository.
func NewCartRepository(store *database.Store, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		store:  store,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Add puts one unit of the product into the cart. The read of the existing
// quantity and the following write run in one transaction, so no concurrent
// mutation of the row can be lost between the check and the act.
func (r *cartRepository) Add(ctx context.Context, productID string) error {
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		product, err := productForUpdate(ctx, tx, productID)
		if err != nil {
			if err == model.ErrProductNotFound {
				r.logger.Warn().Str("product_id", productID).Msg("product not found")
			} else {
				r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to load product")
			}
			return err
		}

		var qty int
		err = tx.QueryRowContext(ctx, `SELECT qty FROM cart_items WHERE product_id = ?`, productID).Scan(&qty)
		switch {
		case err == sql.ErrNoRows:
			// First add for this product: a fresh row needs one unit of stock.
			if guardErr := ensureStock(product, 1, model.ErrOutOfStock); guardErr != nil {
				r.logger.Warn().Str("product_id", productID).Msg("product out of stock")
				return guardErr
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO cart_items (product_id, qty) VALUES (?, 1)`, productID); err != nil {
				r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to insert cart item")
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		case err != nil:
			r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query cart item")
			return fmt.Errorf("failed to query cart item: %w", err)
		default:
			if guardErr := ensureStock(product, qty+1, model.ErrOutOfStock); guardErr != nil {
				r.logger.Warn().
					Str("product_id", productID).
					Int("qty", qty).
					Int("stock", product.Stock).
					Msg("cart quantity would exceed stock")
				return guardErr
			}
			if _, err := tx.ExecContext(ctx, `UPDATE cart_items SET qty = qty + 1 WHERE product_id = ?`, productID); err != nil {
				r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to increment cart item")
				return fmt.Errorf("failed to increment cart item: %w", err)
			}
		}

		return nil
	})
}

// GetCart retrieves all cart rows joined with their product's current name,
// price and stock.
func (r *cartRepository) GetCart(ctx context.Context) ([]model.CartItem, error) {
	const query = `
		SELECT c.id, c.product_id, c.qty, p.name, p.price, p.stock
		FROM cart_items c
		JOIN products p ON c.product_id = p.product_id
	`

	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Qty, &item.Name, &item.Price, &item.Stock); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart: %w", err)
	}

	return items, nil
}

// UpdateQty sets a cart row's quantity exactly; qty <= 0 deletes the row.
// Stock is not re-read here: the caller validates against the stock it
// displayed, and checkout re-checks live stock regardless.
func (r *cartRepository) UpdateQty(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		if _, err := r.store.DB().ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id); err != nil {
			r.logger.Error().Err(err).Int64("id", id).Msg("failed to delete cart item")
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		r.logger.Debug().Int64("id", id).Msg("cart item removed")
		return nil
	}

	if _, err := r.store.DB().ExecContext(ctx, `UPDATE cart_items SET qty = ? WHERE id = ?`, qty, id); err != nil {
		r.logger.Error().Err(err).Int64("id", id).Int("qty", qty).Msg("failed to update cart quantity")
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	return nil
}
