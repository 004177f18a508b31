package repository

import (
	"context"
	"database/sql"
	"fmt"

	"localmart/internal/database"
	"localmart/internal/model"

	"github.com/rs/zerolog"
)

// seedCatalog is the fixed starter catalogue inserted on first run.
const seedCatalog = `
	INSERT INTO products (product_id, name, price, stock)
	VALUES
		('p1','Hạt Cà phê Arabica',250000,50),
		('p2','Trà Oolong Thượng Hạng',180000,30),
		('p3','Mật ong hoa nhãn',320000,20),
		('p4','Phô mai Camembert',150000,15),
		('p5','Xúc xích Salami Ý',280000,25),
		('p6','Bánh mì Sourdough',80000,40),
		('p7','Dầu Olive Extra Virgin',190000,30),
		('p8','Chocolate Đen 85%',120000,50),
		('p9','Rượu vang đỏ Chile',450000,12),
		('p10','Bột Matcha Nhật Bản',300000,18),
		('p11','Hạt Dinh Dưỡng Mix',170000,40),
		('p12','Nấm Truffle Đen',950000,5),
		('p13','Sốt Pesto Tươi',95000,22),
		('p14','Cá Hồi Xông Khói',220000,15),
		('p15','Mứt dâu tằm',75000,30)
`

// productRepository implements ProductRepository on the embedded store.
type productRepository struct {
	store  *database.Store
	logger zerolog.Logger
}

// NewProductRepository creates a new store-backed product repository.
func NewProductRepository(store *database.Store, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		store:  store,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Seed inserts the starter catalogue when the product table is empty.
// The emptiness check and insert run in one transaction.
func (r *productRepository) Seed(ctx context.Context) error {
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
			r.logger.Error().Err(err).Msg("failed to count products")
			return fmt.Errorf("failed to count products: %w", err)
		}

		if count > 0 {
			r.logger.Debug().Int("count", count).Msg("catalogue already seeded")
			return nil
		}

		if _, err := tx.ExecContext(ctx, seedCatalog); err != nil {
			r.logger.Error().Err(err).Msg("failed to seed catalogue")
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}

		r.logger.Info().Msg("starter catalogue seeded")
		return nil
	})
}

// GetProducts retrieves in-stock products matching the filter, ordered by
// name ascending.
func (r *productRepository) GetProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := `
		SELECT product_id, name, price, stock
		FROM products
		WHERE stock > 0
	`
	var args []any

	if filter.Keyword != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+filter.Keyword+"%")
	}
	if filter.MinPrice != nil {
		query += ` AND price >= ?`
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND price <= ?`
		args = append(args, *filter.MaxPrice)
	}

	query += ` ORDER BY name`

	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("keyword", filter.Keyword).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price, &p.Stock); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	p, err := productForUpdate(ctx, r.store.DB(), productID)
	if err != nil {
		if err == model.ErrProductNotFound {
			r.logger.Debug().Str("product_id", productID).Msg("product not found")
		} else {
			r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query product")
		}
		return nil, err
	}
	return p, nil
}

// AvailableStock returns the catalogue stock minus the quantity currently
// reserved in the cart for the product. This is the one place "available
// stock" is derived; screens display it rather than re-deriving it.
func (r *productRepository) AvailableStock(ctx context.Context, productID string) (int, error) {
	const query = `
		SELECT p.stock - COALESCE(c.qty, 0)
		FROM products p
		LEFT JOIN cart_items c ON c.product_id = p.product_id
		WHERE p.product_id = ?
	`

	var available int
	err := r.store.DB().QueryRowContext(ctx, query, productID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug().Str("product_id", productID).Msg("product not found")
			return 0, model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query available stock")
		return 0, fmt.Errorf("failed to query available stock: %w", err)
	}

	return available, nil
}
