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

package store

import (
	"context"
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/cache"
)

// FlowStoreInterface defines the persistence operations for flow contexts.
type FlowStoreInterface interface {
	StoreFlowContext(ctx context.Context, record FlowContextRecord) error
	GetFlowContext(ctx context.Context, flowID string) (*FlowContextRecord, error)
	UpdateFlowContext(ctx context.Context, record FlowContextRecord) error
	DeleteFlowContext(ctx context.Context, flowID string) error
}

// FlowStore persists flow contexts in the configured cache backend. Entries
// expire with the cache TTL, which bounds how long an abandoned flow can be
// resumed.
type FlowStore struct {
	cache cache.CacheInterface[FlowContextRecord]
}

// NewFlowStore creates a flow store backed by the given cache.
func NewFlowStore(flowCache cache.CacheInterface[FlowContextRecord]) *FlowStore {
	return &FlowStore{cache: flowCache}
}

// StoreFlowContext stores the flow context record against its flow ID.
func (s *FlowStore) StoreFlowContext(ctx context.Context, record FlowContextRecord) error {
	if record.FlowID == "" {
		return fmt.Errorf("flow ID cannot be empty")
	}
	return s.cache.Set(ctx, cache.CacheKey{Key: record.FlowID}, record)
}

// GetFlowContext returns the stored record for the flow ID, or nil when the
// flow is unknown or has expired.
func (s *FlowStore) GetFlowContext(ctx context.Context, flowID string) (*FlowContextRecord, error) {
	record, found := s.cache.Get(ctx, cache.CacheKey{Key: flowID})
	if !found {
		return nil, nil
	}
	return &record, nil
}

// UpdateFlowContext replaces the stored record for the flow ID.
func (s *FlowStore) UpdateFlowContext(ctx context.Context, record FlowContextRecord) error {
	return s.StoreFlowContext(ctx, record)
}

// DeleteFlowContext removes the stored record for the flow ID.
func (s *FlowStore) DeleteFlowContext(ctx context.Context, flowID string) error {
	return s.cache.Delete(ctx, cache.CacheKey{Key: flowID})
}
