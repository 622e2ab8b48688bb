// Package storage selects the snapshot repository named by the configuration.
package storage

import (
	"context"
	"fmt"

	dbadapter "tasktracker/internal/adapter/db"
	"tasktracker/internal/adapter/storage/csvfile"
	"tasktracker/internal/adapter/storage/redisstore"
	"tasktracker/internal/config"
	"tasktracker/internal/core/ports"
)

// Open returns the repository for cfg.StorageDriver, or nil for the memory
// driver. SQL schemas are created on the way.
func Open(ctx context.Context, cfg *config.Config) (ports.SnapshotRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return nil, nil
	case config.StorageCSV:
		return csvfile.NewRepository(cfg.StoragePath), nil
	case config.StorageRedis:
		client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return redisstore.NewRepository(client, cfg.RedisKey), nil
	case config.StorageMySQL, config.StoragePostgres, config.StorageSQLite:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.StorageDriver, err)
		}
		repository := dbadapter.NewSnapshotRepository(db)
		if err := repository.Migrate(ctx); err != nil {
			_ = repository.Close()
			return nil, err
		}
		return repository, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
