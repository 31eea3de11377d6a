package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/store"
	"github.com/altusecase/altuse-server/internal/store/postgres"
	"github.com/altusecase/altuse-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store for the configured driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		db  store.Store
		err error
	)

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err = postgres.Open(context.Background(), cfg.Store.PostgresDSN, log.Logger)
	default:
		if mkErr := os.MkdirAll(cfg.Store.DataPath, 0o755); mkErr != nil {
			return nil, fmt.Errorf("create data directory: %w", mkErr)
		}
		db, err = sqlite.Open(filepath.Join(cfg.Store.DataPath, "altuse.db"), log.Logger)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", cfg.Store.Driver)

	return &StoreHandle{Store: db}, nil
}

// Bootstrap seeds reference data the handlers assume exists.
type Bootstrap struct {
	CategoriesSeeded bool
}

// ProvideBootstrap ensures the default category set exists.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	if err := storeHandle.EnsureDefaultCategories(context.Background()); err != nil {
		return nil, fmt.Errorf("seed default categories: %w", err)
	}

	log.Info("Default categories ready")
	return &Bootstrap{CategoriesSeeded: true}, nil
}
