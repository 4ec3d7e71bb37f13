// Package settings is a small key-value store for runtime configuration the
// staff can change without a deploy (payment credentials, shop options).
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zibacafe/cafe-system/internal/redisx"
)

var ErrNotFound = errors.New("setting not found")

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Repo struct {
	DB    *pgxpool.Pool
	Redis *redis.Client // optional read-through cache
}

// Get returns the stored value for key, serving from redis when possible.
func (r *Repo) Get(ctx context.Context, key string) (Setting, error) {
	cacheKey := fmt.Sprintf(redisx.KeySetting, key)
	if r.Redis != nil {
		if v, err := r.Redis.Get(ctx, cacheKey).Result(); err == nil {
			return Setting{Key: key, Value: v}, nil
		}
	}

	var s Setting
	err := r.DB.QueryRow(ctx, `SELECT key, value FROM settings WHERE key=$1`, key).
		Scan(&s.Key, &s.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return Setting{}, ErrNotFound
	}
	if err != nil {
		return Setting{}, err
	}
	if r.Redis != nil {
		_ = r.Redis.Set(ctx, cacheKey, s.Value, redisx.TTLSettingCache).Err()
	}
	return s, nil
}

// Put inserts or replaces the value for key and drops the cached copy.
func (r *Repo) Put(ctx context.Context, key, value string) (Setting, error) {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO settings(key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return Setting{}, err
	}
	if r.Redis != nil {
		_ = r.Redis.Del(ctx, fmt.Sprintf(redisx.KeySetting, key)).Err()
	}
	return Setting{Key: key, Value: value}, nil
}
