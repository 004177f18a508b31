package service

import (
	"context"

	"localmart/internal/model"
	"localmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// taxRate is the fixed tax applied to every order total.
var taxRate = decimal.NewFromFloat(0.10)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Checkout reads the cart fresh, computes the taxed total in exact decimal
// arithmetic and runs the checkout transaction. The caller refreshes its
// view from the store afterwards; nothing is mutated optimistically.
func (s *orderService) Checkout(ctx context.Context) (*model.CheckoutResult, error) {
	// Correlation id ties together the log lines of one checkout attempt.
	logger := s.logger.With().Str("checkout_id", uuid.NewString()).Logger()

	items, err := s.cartRepo.GetCart(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read cart")
		return nil, err
	}

	if len(items) == 0 {
		logger.Warn().Msg("checkout attempted with empty cart")
		return nil, model.ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Round(2)

	orderID, err := s.orderRepo.Create(ctx, items, total.InexactFloat64())
	if err != nil {
		logger.Warn().Err(err).Int("item_count", len(items)).Msg("checkout failed")
		return nil, err
	}

	logger.Info().
		Int64("order_id", orderID).
		Int("item_count", len(items)).
		Str("total", total.String()).
		Msg("checkout completed")

	return &model.CheckoutResult{
		OrderID:  orderID,
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}, nil
}

// History retrieves all orders, most recent first.
func (s *orderService) History(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.GetOrders(ctx)
}

// Items retrieves one order's line items.
func (s *orderService) Items(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	return s.orderRepo.GetOrderItems(ctx, orderID)
}
