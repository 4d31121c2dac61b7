package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/roomcraft/internal/catalog"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/config"
	"github.com/Veraticus/roomcraft/internal/recommend"
	"github.com/Veraticus/roomcraft/internal/storage"
)

// loadSettings resolves the configuration for the running command.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, common.NewUserError("Invalid configuration", err)
	}
	return settings, nil
}

// loadCatalog reads the product catalog named by the settings.
func loadCatalog(settings config.Settings) (*catalog.Catalog, error) {
	products, err := catalog.LoadFile(settings.CatalogPath)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("Could not load the product catalog at %s (set --catalog or PRODUCTS_CONFIG_PATH)", settings.CatalogPath),
			err)
	}
	return products, nil
}

// initStorage opens and migrates the response store.
func initStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newEngine builds the recommendation engine. advisor may be nil.
func newEngine(products *catalog.Catalog, advisor recommend.Advisor, settings config.Settings) *recommend.Engine {
	cfg := recommend.DefaultConfig()
	cfg.CandidateLimit = settings.CandidateLimit
	return recommend.NewWithConfig(products, advisor, cfg)
}

// splitList flattens repeated and comma-separated flag values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
