package core

import (
	"context"
	"fmt"
	"strings"

	"trainerdex/internal/config"
	"trainerdex/internal/infra/persistence/memory"
	"trainerdex/internal/infra/persistence/postgres"
	"trainerdex/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a persistent store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only
	StorageSQLite   StorageDriver = "sqlite"   // memory plus a sqlite journal
	StoragePostgres StorageDriver = "postgres" // memory plus a postgres journal
)

// OpenPersistentStore builds the store selected by cfg and loads the embedded
// seed into it. Journaling backends start from the seed as well; their
// journals are never replayed. Stores holding a database handle implement
// io.Closer.
func OpenPersistentStore(ctx context.Context, cfg config.StoreConfig, engine *RulesEngine) (PersistentStore, error) {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	driver := StorageDriver(strings.ToLower(cfg.Driver))
	if driver == "" {
		driver = StorageMemory
	}
	var (
		store PersistentStore
		err   error
	)
	switch driver {
	case StorageMemory:
		store = memory.NewStore(engine)
	case StorageSQLite:
		store, err = sqlite.NewStore(ctx, cfg.SQLitePath, engine)
	case StoragePostgres:
		store, err = postgres.NewStore(ctx, cfg.PostgresDSN, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := SeedStore(store); err != nil {
		return nil, err
	}
	return store, nil
}
