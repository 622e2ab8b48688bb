package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	dbadapter "tasktracker/internal/adapter/db"
	"tasktracker/internal/adapter/storage/csvfile"
	"tasktracker/internal/adapter/storage/redisstore"
	"tasktracker/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repository, err := Open(ctx, &config.Config{StorageDriver: config.StorageMemory})
	require.NoError(t, err)
	require.Nil(t, repository)

	repository, err = Open(ctx, &config.Config{StorageDriver: config.StorageCSV, StoragePath: filepath.Join(dir, "t.csv")})
	require.NoError(t, err)
	require.IsType(t, &csvfile.Repository{}, repository)

	repository, err = Open(ctx, &config.Config{StorageDriver: config.StorageRedis, RedisAddr: "127.0.0.1:1", RedisKey: "k"})
	require.NoError(t, err)
	require.IsType(t, &redisstore.Repository{}, repository)
	require.NoError(t, repository.Close())

	repository, err = Open(ctx, &config.Config{StorageDriver: config.StorageSQLite, StoragePath: filepath.Join(dir, "t.db")})
	require.NoError(t, err)
	require.IsType(t, &dbadapter.SnapshotRepository{}, repository)
	snapshot, err := repository.Load(ctx)
	require.NoError(t, err)
	require.True(t, snapshot.Empty())
	require.NoError(t, repository.Close())

	_, err = Open(ctx, &config.Config{StorageDriver: "tape"})
	require.Error(t, err)
}
