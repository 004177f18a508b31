package model

import "fmt"

// Standard error codes for domain failures
const (
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidPriceRange = "INVALID_PRICE_RANGE"
	ErrCodeEmptyCart         = "EMPTY_CART"
)

// DomainError is a typed business-rule failure.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so a per-product
// error still matches its generic sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product does not exist")
	ErrOutOfStock        = NewDomainError(ErrCodeOutOfStock, "Requested quantity exceeds available stock")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Insufficient stock to fulfil order")
	ErrInvalidPriceRange = NewDomainError(ErrCodeInvalidPriceRange, "Minimum price must not exceed maximum price")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
)

// InsufficientStock creates an INSUFFICIENT_STOCK error naming the
// offending product. It matches ErrInsufficientStock under errors.Is.
func InsufficientStock(name string) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, fmt.Sprintf("Insufficient stock for product %q", name))
}
