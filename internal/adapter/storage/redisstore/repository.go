// Package redisstore keeps the CSV snapshot as a single redis string value.
package redisstore

import (
	"bytes"
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"tasktracker/internal/adapter/storage/csvfile"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type Repository struct {
	client *redis.Client
	key    string
}

var _ ports.SnapshotRepository = (*Repository)(nil)

func NewRepository(client *redis.Client, key string) *Repository {
	return &Repository{client: client, key: key}
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *Repository) Load(ctx context.Context) (domain.Snapshot, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}

	snapshot, err := csvfile.Decode(bytes.NewReader(payload))
	if err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}
	return snapshot, nil
}

func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	var buf bytes.Buffer
	if err := csvfile.Encode(&buf, snapshot); err != nil {
		return domain.NewPersistenceError("save", err)
	}
	if err := r.client.Set(ctx, r.key, buf.Bytes(), 0).Err(); err != nil {
		return domain.NewPersistenceError("save", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return domain.NewPersistenceError("ping", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}
