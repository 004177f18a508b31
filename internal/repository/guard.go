package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmart/internal/model"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so lookups work
// inside and outside a transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// productForUpdate loads a product's current row. Inside a transaction this
// reads live stock, not a value cached before the transaction began.
func productForUpdate(ctx context.Context, q rowQuerier, productID string) (*model.Product, error) {
	const query = `
		SELECT product_id, name, price, stock
		FROM products
		WHERE product_id = ?
	`

	var p model.Product
	err := q.QueryRowContext(ctx, query, productID).Scan(&p.ProductID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// ensureStock is the single stock-sufficiency guard shared by cart
// mutations and checkout. It returns fail when p cannot cover qty; the
// caller chooses the failure (ErrOutOfStock on cart add, an
// INSUFFICIENT_STOCK error on checkout).
func ensureStock(p *model.Product, qty int, fail error) error {
	if qty > p.Stock {
		return fail
	}
	return nil
}
