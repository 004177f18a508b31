package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"localmart/internal/database"
	"localmart/internal/model"

	"github.com/rs/zerolog"
)

// createdAtLayout is SQLite's CURRENT_TIMESTAMP text format (UTC).
const createdAtLayout = "2006-01-02 15:04:05"

// orderRepository implements OrderRepository on the embedded store.
type orderRepository struct {
	store  *database.Store
	logger zerolog.Logger
}

// NewOrderRepository creates a new store-backed order repository.
func NewOrderRepository(store *database.Store, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		store:  store,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create runs the checkout transaction. Stock is re-read live per item
// inside the transaction; the unit price written to order_items is the one
// captured in the cart item, so later catalogue price changes do not touch
// placed orders. On any failure every write is rolled back.
func (r *orderRepository) Create(ctx context.Context, items []model.CartItem, total float64) (int64, error) {
	var orderID int64

	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO orders (total) VALUES (?)`, total)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to insert order")
			return fmt.Errorf("failed to insert order: %w", err)
		}

		orderID, err = res.LastInsertId()
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to read generated order id")
			return fmt.Errorf("failed to read generated order id: %w", err)
		}

		for _, item := range items {
			product, err := productForUpdate(ctx, tx, item.ProductID)
			if err != nil {
				r.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to load product for checkout")
				return err
			}

			if err := ensureStock(product, item.Qty, model.InsufficientStock(product.Name)); err != nil {
				r.logger.Warn().
					Str("product_id", item.ProductID).
					Int("requested", item.Qty).
					Int("stock", product.Stock).
					Msg("insufficient stock at checkout")
				return err
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, qty, price) VALUES (?, ?, ?, ?)`,
				orderID, item.ProductID, item.Qty, item.Price,
			)
			if err != nil {
				r.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to insert order item")
				return fmt.Errorf("failed to insert order item: %w", err)
			}

			_, err = tx.ExecContext(ctx,
				`UPDATE products SET stock = stock - ? WHERE product_id = ?`,
				item.Qty, item.ProductID,
			)
			if err != nil {
				r.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to decrement stock")
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		// The cart is the whole checkout basket; clear all of it.
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
			r.logger.Error().Err(err).Msg("failed to clear cart")
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info().
		Int64("order_id", orderID).
		Int("item_count", len(items)).
		Float64("total", total).
		Msg("order created")

	return orderID, nil
}

// GetOrders retrieves all orders, most recent first. order_id breaks ties
// between orders created within the same second.
func (r *orderRepository) GetOrders(ctx context.Context) ([]model.Order, error) {
	const query = `
		SELECT order_id, created_at, total
		FROM orders
		ORDER BY created_at DESC, order_id DESC
	`

	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		var createdAt string
		if err := rows.Scan(&o.OrderID, &createdAt, &o.Total); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		o.CreatedAt, err = time.ParseInLocation(createdAtLayout, createdAt, time.UTC)
		if err != nil {
			r.logger.Error().Err(err).Str("created_at", createdAt).Msg("failed to parse order timestamp")
			return nil, fmt.Errorf("failed to parse order timestamp %q: %w", createdAt, err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetOrderItems retrieves one order's line items joined with product names.
func (r *orderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	const query = `
		SELECT o.id, o.product_id, p.name, o.qty, o.price
		FROM order_items o
		JOIN products p ON o.product_id = p.product_id
		WHERE o.order_id = ?
	`

	rows, err := r.store.DB().QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	lines := []model.OrderLine{}
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.Name, &line.Qty, &line.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return lines, nil
}
