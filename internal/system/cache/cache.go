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

// Package cache provides a generic cache with in-memory and Redis backends.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
)

const (
	// BackendTypeInMemory selects the in-memory cache backend.
	BackendTypeInMemory = "inmemory"
	// BackendTypeRedis selects the Redis cache backend.
	BackendTypeRedis = "redis"

	defaultCacheSize = 1000
	defaultCacheTTL  = 900 * time.Second
)

// CacheKey represents a key used to identify an entry in the cache.
type CacheKey struct {
	Key string
}

// ToString returns the string representation of the cache key.
func (k CacheKey) ToString() string {
	return k.Key
}

// CacheInterface defines the operations supported by a cache.
type CacheInterface[T any] interface {
	Set(ctx context.Context, key CacheKey, value T) error
	Get(ctx context.Context, key CacheKey) (T, bool)
	Delete(ctx context.Context, key CacheKey) error
	Clear(ctx context.Context) error
	IsEnabled() bool
	GetName() string
}

// NewCache creates a cache with the backend selected by the given configuration.
func NewCache[T any](name string, cfg config.CacheConfig) (CacheInterface[T], error) {
	if cfg.Disabled {
		return newDisabledCache[T](name), nil
	}

	size := cfg.Size
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := defaultCacheTTL
	if cfg.TTL > 0 {
		ttl = time.Duration(cfg.TTL) * time.Second
	}

	switch cfg.Type {
	case BackendTypeRedis:
		return newRedisCache[T](name, ttl, cfg.Redis), nil
	case BackendTypeInMemory, "":
		return newInMemoryCache[T](name, size, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend type: %s", cfg.Type)
	}
}

// disabledCache is a no-op cache used when caching is turned off.
type disabledCache[T any] struct {
	name string
}

func newDisabledCache[T any](name string) *disabledCache[T] {
	return &disabledCache[T]{name: name}
}

func (c *disabledCache[T]) Set(_ context.Context, _ CacheKey, _ T) error {
	return nil
}

func (c *disabledCache[T]) Get(_ context.Context, _ CacheKey) (T, bool) {
	var zero T
	return zero, false
}

func (c *disabledCache[T]) Delete(_ context.Context, _ CacheKey) error {
	return nil
}

func (c *disabledCache[T]) Clear(_ context.Context) error {
	return nil
}

func (c *disabledCache[T]) IsEnabled() bool {
	return false
}

func (c *disabledCache[T]) GetName() string {
	return c.name
}
