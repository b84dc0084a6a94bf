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
	"container/list"
	"context"
	"sync"
	"time"
)

// cacheEntry holds a single cached value together with its expiry time.
type cacheEntry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// inMemoryCache is an LRU cache with per-entry TTL.
type inMemoryCache[T any] struct {
	name    string
	maxSize int
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
}

func newInMemoryCache[T any](name string, maxSize int, ttl time.Duration) *inMemoryCache[T] {
	return &inMemoryCache[T]{
		name:    name,
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *inMemoryCache[T]) Set(_ context.Context, key CacheKey, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry[T]{
		key:       key.ToString(),
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, ok := c.entries[entry.key]; ok {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return nil
	}

	c.entries[entry.key] = c.order.PushFront(entry)
	if c.order.Len() > c.maxSize {
		c.evictOldest()
	}
	return nil
}

func (c *inMemoryCache[T]) Get(_ context.Context, key CacheKey) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.entries[key.ToString()]
	if !ok {
		return zero, false
	}

	entry := elem.Value.(*cacheEntry[T])
	if time.Now().After(entry.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

func (c *inMemoryCache[T]) Delete(_ context.Context, key CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key.ToString()]; ok {
		c.removeElement(elem)
	}
	return nil
}

func (c *inMemoryCache[T]) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

func (c *inMemoryCache[T]) IsEnabled() bool {
	return true
}

func (c *inMemoryCache[T]) GetName() string {
	return c.name
}

// evictOldest removes the least recently used entry. Caller must hold the lock.
func (c *inMemoryCache[T]) evictOldest() {
	if elem := c.order.Back(); elem != nil {
		c.removeElement(elem)
	}
}

// removeElement removes an entry from both indexes. Caller must hold the lock.
func (c *inMemoryCache[T]) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry[T])
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
