package model

// Product represents a sellable item in the catalogue.
type Product struct {
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Stock     int     `json:"stock" db:"stock"`
}

// ProductFilter narrows a catalogue query. Zero values mean "no filter".
type ProductFilter struct {
	// Keyword is matched as a substring of the product name.
	Keyword string

	// MinPrice and MaxPrice are inclusive bounds; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64
}
