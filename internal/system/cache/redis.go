/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// redisCache stores entries as JSON values in Redis with a TTL applied per key.
type redisCache[T any] struct {
	name   string
	ttl    time.Duration
	client *redis.Client
}

func newRedisCache[T any](name string, ttl time.Duration, cfg config.RedisConfig) *redisCache[T] {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache[T]{
		name:   name,
		ttl:    ttl,
		client: client,
	}
}

// entryKey namespaces keys per cache so that multiple caches can share a Redis database.
func (c *redisCache[T]) entryKey(key CacheKey) string {
	return fmt.Sprintf("cache:%s:%s", c.name, key.ToString())
}

func (c *redisCache[T]) Set(ctx context.Context, key CacheKey, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.entryKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

func (c *redisCache[T]) Get(ctx context.Context, key CacheKey) (T, bool) {
	var zero T
	data, err := c.client.Get(ctx, c.entryKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RedisCache"))
			logger.Error("Failed to read cache entry", log.Error(err))
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RedisCache"))
		logger.Error("Failed to deserialize cache entry", log.Error(err))
		return zero, false
	}
	return value, true
}

func (c *redisCache[T]) Delete(ctx context.Context, key CacheKey) error {
	if err := c.client.Del(ctx, c.entryKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (c *redisCache[T]) Clear(ctx context.Context) error {
	pattern := fmt.Sprintf("cache:%s:*", c.name)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to clear cache entries: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache entries: %w", err)
	}
	return nil
}

func (c *redisCache[T]) IsEnabled() bool {
	return true
}

func (c *redisCache[T]) GetName() string {
	return c.name
}
