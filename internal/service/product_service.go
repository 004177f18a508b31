package service

import (
	"context"

	"localmart/internal/model"
	"localmart/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Browse retrieves in-stock products filtered by keyword and price range.
// The range is validated before the store is touched.
func (s *productService) Browse(ctx context.Context, keyword string, minPrice, maxPrice *float64) ([]model.Product, error) {
	if minPrice != nil && *minPrice < 0 {
		s.logger.Warn().Float64("min_price", *minPrice).Msg("negative minimum price")
		return nil, model.ErrInvalidPriceRange
	}
	if maxPrice != nil && *maxPrice < 0 {
		s.logger.Warn().Float64("max_price", *maxPrice).Msg("negative maximum price")
		return nil, model.ErrInvalidPriceRange
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		s.logger.Warn().
			Float64("min_price", *minPrice).
			Float64("max_price", *maxPrice).
			Msg("minimum price exceeds maximum price")
		return nil, model.ErrInvalidPriceRange
	}

	return s.productRepo.GetProducts(ctx, model.ProductFilter{
		Keyword:  keyword,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
}

// Available returns the product's stock minus its cart reservation.
func (s *productService) Available(ctx context.Context, productID string) (int, error) {
	return s.productRepo.AvailableStock(ctx, productID)
}
