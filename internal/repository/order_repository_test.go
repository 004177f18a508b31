package repository

import (
	"context"
	"testing"

	"localmart/internal/database"
	"localmart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productStock(t *testing.T, store *database.Store, productID string) int {
	t.Helper()

	var stock int
	err := store.DB().QueryRowContext(context.Background(),
		`SELECT stock FROM products WHERE product_id = ?`, productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func TestCreate_Success(t *testing.T) {
	store := setupTestStore(t)
	cartRepo := NewCartRepository(store, zerolog.Nop())
	orderRepo := NewOrderRepository(store, zerolog.Nop())
	ctx := context.Background()

	insertProduct(t, store, "p1", "Coffee", 100, 5)
	insertProduct(t, store, "p2", "Tea", 50, 8)

	require.NoError(t, cartRepo.Add(ctx, "p1"))
	require.NoError(t, cartRepo.Add(ctx, "p1"))
	require.NoError(t, cartRepo.Add(ctx, "p2"))

	items, err := cartRepo.GetCart(ctx)
	require.NoError(t, err)

	orderID, err := orderRepo.Create(ctx, items, 275) // (2*100 + 50) * 1.10
	require.NoError(t, err)
	assert.Positive(t, orderID)

	// Stock decremented by the ordered quantities.
	assert.Equal(t, 3, productStock(t, store, "p1"))
	assert.Equal(t, 7, productStock(t, store, "p2"))

	// The whole cart is cleared.
	items, err = cartRepo.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := orderRepo.GetOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].OrderID)
	assert.Equal(t, 275.0, orders[0].Total)
	assert.False(t, orders[0].CreatedAt.IsZero())

	lines, err := orderRepo.GetOrderItems(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byID := map[string]model.OrderLine{}
	for _, line := range lines {
		byID[line.ProductID] = line
	}
	assert.Equal(t, 2, byID["p1"].Qty)
	assert.Equal(t, 100.0, byID["p1"].Price)
	assert.Equal(t, "Coffee", byID["p1"].Name)
	assert.Equal(t, 1, byID["p2"].Qty)
	assert.Equal(t, 50.0, byID["p2"].Price)
}

func TestCreate_InsufficientStockRollsBackEverything(t *testing.T) {
	store := setupTestStore(t)
	cartRepo := NewCartRepository(store, zerolog.Nop())
	orderRepo := NewOrderRepository(store, zerolog.Nop())
	ctx := context.Background()

	insertProduct(t, store, "p1", "Coffee", 100, 5)
	insertProduct(t, store, "p2", "Tea", 50, 3)

	require.NoError(t, cartRepo.Add(ctx, "p1"))
	require.NoError(t, cartRepo.Add(ctx, "p2"))
	require.NoError(t, cartRepo.Add(ctx, "p2"))

	items, err := cartRepo.GetCart(ctx)
	require.NoError(t, err)

	// Stock drops between cart build and checkout; the live re-read must
	// catch it.
	_, err = store.DB().ExecContext(ctx, `UPDATE products SET stock = 1 WHERE product_id = 'p2'`)
	require.NoError(t, err)

	_, err = orderRepo.Create(ctx, items, 275)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Tea")

	// Catalogue, cart and order tables are completely unchanged.
	assert.Equal(t, 5, productStock(t, store, "p1"))
	assert.Equal(t, 1, productStock(t, store, "p2"))
	assert.Equal(t, 0, countRows(t, store, "orders"))
	assert.Equal(t, 0, countRows(t, store, "order_items"))

	items, err = cartRepo.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreate_CapturesPriceAtOrderTime(t *testing.T) {
	store := setupTestStore(t)
	cartRepo := NewCartRepository(store, zerolog.Nop())
	orderRepo := NewOrderRepository(store, zerolog.Nop())
	ctx := context.Background()

	insertProduct(t, store, "p1", "Coffee", 100, 5)

	require.NoError(t, cartRepo.Add(ctx, "p1"))
	items, err := cartRepo.GetCart(ctx)
	require.NoError(t, err)

	orderID, err := orderRepo.Create(ctx, items, 110)
	require.NoError(t, err)

	// A later catalogue price change must not rewrite history.
	_, err = store.DB().ExecContext(ctx, `UPDATE products SET price = 999 WHERE product_id = 'p1'`)
	require.NoError(t, err)

	lines, err := orderRepo.GetOrderItems(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 100.0, lines[0].Price)
}

func TestGetOrders_MostRecentFirst(t *testing.T) {
	store := setupTestStore(t)
	orderRepo := NewOrderRepository(store, zerolog.Nop())
	ctx := context.Background()

	// Controlled timestamps; the last two collide to exercise the
	// order_id tiebreak.
	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO orders (created_at, total) VALUES
			('2026-01-01 09:00:00', 100),
			('2026-01-02 09:00:00', 200),
			('2026-01-02 09:00:00', 300)
	`)
	require.NoError(t, err)

	orders, err := orderRepo.GetOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, 300.0, orders[0].Total)
	assert.Equal(t, 200.0, orders[1].Total)
	assert.Equal(t, 100.0, orders[2].Total)
	assert.True(t, orders[2].CreatedAt.Before(orders[0].CreatedAt))
}

func TestGetOrders_Empty(t *testing.T) {
	store := setupTestStore(t)
	orderRepo := NewOrderRepository(store, zerolog.Nop())

	orders, err := orderRepo.GetOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

// Full scenario: seed p1 (price 250000, stock 50), fill the cart to the
// stock limit, check out, and verify totals and stock.
func TestCheckoutScenario_FullStock(t *testing.T) {
	store := setupTestStore(t)
	productRepo := NewProductRepository(store, zerolog.Nop())
	cartRepo := NewCartRepository(store, zerolog.Nop())
	orderRepo := NewOrderRepository(store, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, productRepo.Seed(ctx))

	for i := 0; i < 50; i++ {
		require.NoError(t, cartRepo.Add(ctx, "p1"))
	}

	// The 51st add would push qty past stock.
	err := cartRepo.Add(ctx, "p1")
	assert.ErrorIs(t, err, model.ErrOutOfStock)

	items, err := cartRepo.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 50, items[0].Qty)

	orderID, err := orderRepo.Create(ctx, items, 13750000) // 250000 * 50 * 1.10
	require.NoError(t, err)

	p1, err := productRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p1.Stock)

	items, err = cartRepo.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := orderRepo.GetOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].OrderID)
	assert.Equal(t, 13750000.0, orders[0].Total)
}
