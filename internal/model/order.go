package model

import "time"

// Order represents a placed order. Orders are immutable once created.
type Order struct {
	OrderID   int64     `json:"orderId" db:"order_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Total     float64   `json:"total" db:"total"`
}

// OrderLine represents one line item of an order joined with the product
// name. Price is the unit price captured when the order was placed, not
// the current catalogue price.
type OrderLine struct {
	ID        int64   `json:"id" db:"id"`
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Qty       int     `json:"qty" db:"qty"`
	Price     float64 `json:"price" db:"price"`
}

// CheckoutResult summarises a successful checkout.
type CheckoutResult struct {
	OrderID  int64   `json:"orderId"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
