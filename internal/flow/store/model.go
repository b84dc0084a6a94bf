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

// Package store provides persistence for flow contexts between requests.
package store

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
)

// FlowContextRecord is the serializable snapshot of an engine context. The
// graph is stored by ID only and re-resolved from the registry on load.
type FlowContextRecord struct {
	FlowID   string             `json:"flowId"`
	FlowType constants.FlowType `json:"flowType"`
	AppID    string             `json:"appId"`
	GraphID  string             `json:"graphId"`

	CurrentNodeID string `json:"currentNodeId,omitempty"`

	DraftUser *model.DraftUser `json:"draftUser,omitempty"`

	SuppliedInputs   map[string]map[string]string        `json:"suppliedInputs,omitempty"`
	PendingInputs    map[string][]model.InputData        `json:"pendingInputs,omitempty"`
	ExecutorStatuses map[string]constants.ExecutorStatus `json:"executorStatuses,omitempty"`
	PinnedDecisions  map[string]string                   `json:"pinnedDecisions,omitempty"`

	AuthenticatedMethods []string          `json:"authenticatedMethods,omitempty"`
	RuntimeData          map[string]string `json:"runtimeData,omitempty"`
}

// FromEngineContext captures the persistent parts of an engine context.
func FromEngineContext(ctx *model.EngineContext) FlowContextRecord {
	record := FlowContextRecord{
		FlowID:               ctx.FlowID,
		FlowType:             ctx.FlowType,
		AppID:                ctx.AppID,
		CurrentNodeID:        ctx.CurrentNodeID,
		DraftUser:            ctx.DraftUser,
		SuppliedInputs:       ctx.SuppliedInputs,
		PendingInputs:        ctx.PendingInputs,
		ExecutorStatuses:     ctx.ExecutorStatuses,
		PinnedDecisions:      ctx.PinnedDecisions,
		AuthenticatedMethods: ctx.AuthenticatedMethods,
		RuntimeData:          ctx.RuntimeData,
	}
	if ctx.Graph != nil {
		record.GraphID = ctx.Graph.GetID()
	}
	return record
}

// ToEngineContext rebuilds an engine context from the record and the resolved graph.
func (r *FlowContextRecord) ToEngineContext(graph model.GraphInterface) *model.EngineContext {
	ctx := &model.EngineContext{
		FlowID:               r.FlowID,
		FlowType:             r.FlowType,
		AppID:                r.AppID,
		Graph:                graph,
		CurrentNodeID:        r.CurrentNodeID,
		DraftUser:            r.DraftUser,
		SuppliedInputs:       r.SuppliedInputs,
		PendingInputs:        r.PendingInputs,
		ExecutorStatuses:     r.ExecutorStatuses,
		PinnedDecisions:      r.PinnedDecisions,
		AuthenticatedMethods: r.AuthenticatedMethods,
		RuntimeData:          r.RuntimeData,
	}
	ctx.EnsureInitialized()
	return ctx
}
