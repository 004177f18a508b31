package model

// CartItem represents one cart row joined with its product's current
// name, price and stock. There is at most one row per product.
type CartItem struct {
	ID        int64   `json:"id" db:"id"`
	ProductID string  `json:"productId" db:"product_id"`
	Qty       int     `json:"qty" db:"qty"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Stock     int     `json:"stock" db:"stock"`
}
