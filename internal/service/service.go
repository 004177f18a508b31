package service

import (
	"context"

	"localmart/internal/model"
)

// ProductService defines operations for browsing the catalogue.
type ProductService interface {
	// Browse retrieves in-stock products filtered by keyword and an
	// inclusive price range.
	Browse(ctx context.Context, keyword string, minPrice, maxPrice *float64) ([]model.Product, error)

	// Available returns the product's stock minus its cart reservation.
	Available(ctx context.Context, productID string) (int, error)
}

// OrderService defines operations for checkout and order history.
type OrderService interface {
	// Checkout reads the cart, computes the taxed total and converts the
	// cart into an order in one transaction.
	Checkout(ctx context.Context) (*model.CheckoutResult, error)

	// History retrieves all orders, most recent first.
	History(ctx context.Context) ([]model.Order, error)

	// Items retrieves one order's line items.
	Items(ctx context.Context, orderID int64) ([]model.OrderLine, error)
}
