package main

import (
	"context"
	"fmt"
	"os"

	"localmart/internal/config"
	"localmart/internal/database"
	"localmart/internal/model"
	"localmart/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns the store lifecycle: open, init schema, seed, close. The
// presentation layer embeds the same wiring and calls the repositories
// directly; there is no network or CLI surface here.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting localmart data core")

	ctx := context.Background()

	store, err := database.Open(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialise schema: %w", err)
	}

	productRepo := repository.NewProductRepository(store, logger)

	if cfg.Database.Seed {
		if err := productRepo.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	products, err := productRepo.GetProducts(ctx, model.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to read catalogue: %w", err)
	}

	logger.Info().
		Str("path", cfg.Database.Path).
		Int("products_in_stock", len(products)).
		Msg("store ready")

	return nil
}
