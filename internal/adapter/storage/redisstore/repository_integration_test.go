//go:build integration

package redisstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/adapter/storage/redisstore"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/manager"
)

func TestRepository_SaveLoad(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client := redisstore.NewClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := fmt.Sprintf("tasktracker:test:%d", time.Now().UnixNano())
	repo := redisstore.NewRepository(client, key)
	defer repo.Close()
	if err := repo.Ping(ctx); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	defer client.Del(context.Background(), key)

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	start := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	m := manager.New(nil)
	task, err := m.CreateTask(domain.NewTask("Deploy", "", domain.StatusNew, &start, 30*time.Minute))
	require.NoError(t, err)
	_, _ = m.GetTask(task.ID)

	require.NoError(t, repo.Save(ctx, m.Snapshot()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	restored := manager.New(nil)
	require.NoError(t, restored.Restore(loaded))
	assert.Equal(t, m.AllTasks(), restored.AllTasks())
	assert.Equal(t, []int{task.ID}, loaded.History)
}
