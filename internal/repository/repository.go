package repository

import (
	"context"

	"localmart/internal/model"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// Seed inserts the starter catalogue when the product table is empty.
	// A second call finds a non-empty table and does nothing.
	Seed(ctx context.Context) error

	// GetProducts retrieves in-stock products matching the filter,
	// ordered by name ascending.
	GetProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product, or ErrProductNotFound.
	GetByID(ctx context.Context, productID string) (*model.Product, error)

	// AvailableStock returns the product's catalogue stock minus the
	// quantity currently reserved in the cart.
	AvailableStock(ctx context.Context, productID string) (int, error)
}

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// Add puts one unit of the product into the cart, incrementing the
	// existing row if present. Fails with ErrProductNotFound or
	// ErrOutOfStock; the cart is left unchanged on failure.
	Add(ctx context.Context, productID string) error

	// GetCart retrieves all cart rows joined with their product's current
	// name, price and stock. Order is unspecified.
	GetCart(ctx context.Context) ([]model.CartItem, error)

	// UpdateQty sets a cart row's quantity exactly, deleting the row when
	// qty <= 0.
	UpdateQty(ctx context.Context, id int64, qty int) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create runs the checkout transaction: insert the order, re-check
	// live stock per item, capture order lines at cart prices, decrement
	// stock, clear the cart. All of it commits or none of it does.
	// Returns the new order's id.
	Create(ctx context.Context, items []model.CartItem, total float64) (int64, error)

	// GetOrders retrieves all orders, most recent first.
	GetOrders(ctx context.Context) ([]model.Order, error)

	// GetOrderItems retrieves one order's line items joined with product
	// names.
	GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderLine, error)
}
