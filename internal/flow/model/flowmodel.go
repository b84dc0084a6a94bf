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

// Package model defines the data structures and interfaces for flow execution and graph representation.
package model

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
)

// EngineContext holds the overall context used by the flow engine during execution.
// Everything except the graph reference and the transient node response is
// persisted between requests.
type EngineContext struct {
	FlowID   string
	FlowType constants.FlowType
	AppID    string
	Graph    GraphInterface

	CurrentNodeID   string
	CurrentActionID string

	DraftUser *DraftUser

	// SuppliedInputs and PendingInputs are keyed by requirement group. The
	// group key is the ID of the node that declared the requirement.
	SuppliedInputs map[string]map[string]string
	PendingInputs  map[string][]InputData

	// ExecutorStatuses is keyed by node ID, or nodeID/executorName for
	// aggregated nodes driving several executors.
	ExecutorStatuses map[string]constants.ExecutorStatus

	PinnedDecisions      map[string]string
	AuthenticatedMethods []string
	RuntimeData          map[string]string

	CurrentNodeResponse *NodeResponse
}

// EnsureInitialized allocates the context maps that have not been set yet.
func (ctx *EngineContext) EnsureInitialized() {
	if ctx.SuppliedInputs == nil {
		ctx.SuppliedInputs = make(map[string]map[string]string)
	}
	if ctx.PendingInputs == nil {
		ctx.PendingInputs = make(map[string][]InputData)
	}
	if ctx.ExecutorStatuses == nil {
		ctx.ExecutorStatuses = make(map[string]constants.ExecutorStatus)
	}
	if ctx.PinnedDecisions == nil {
		ctx.PinnedDecisions = make(map[string]string)
	}
	if ctx.RuntimeData == nil {
		ctx.RuntimeData = make(map[string]string)
	}
	if ctx.DraftUser == nil {
		ctx.DraftUser = NewDraftUser()
	}
}

// ExecutorStatus returns the persisted status for the given status key.
func (ctx *EngineContext) ExecutorStatus(statusKey string) constants.ExecutorStatus {
	if status, ok := ctx.ExecutorStatuses[statusKey]; ok {
		return status
	}
	return constants.ExecNotStarted
}

// GroupInputs returns the inputs supplied so far for the given requirement group.
func (ctx *EngineContext) GroupInputs(groupKey string) map[string]string {
	if inputs, ok := ctx.SuppliedInputs[groupKey]; ok {
		return inputs
	}
	return map[string]string{}
}

// AddGroupInput records a supplied input value under the given requirement group.
func (ctx *EngineContext) AddGroupInput(groupKey, name, value string) {
	if ctx.SuppliedInputs == nil {
		ctx.SuppliedInputs = make(map[string]map[string]string)
	}
	if ctx.SuppliedInputs[groupKey] == nil {
		ctx.SuppliedInputs[groupKey] = make(map[string]string)
	}
	ctx.SuppliedInputs[groupKey][name] = value
}

// buildNodeContext constructs the context handed to an executor.
func (ctx *EngineContext) buildNodeContext(nodeID, groupKey string, nodeInputData []InputData,
	executor ExecutorInterface) *NodeContext {
	nodeCtx := &NodeContext{
		FlowID:               ctx.FlowID,
		FlowType:             ctx.FlowType,
		AppID:                ctx.AppID,
		NodeID:               nodeID,
		CurrentActionID:      ctx.CurrentActionID,
		NodeInputData:        nodeInputData,
		UserInputData:        ctx.GroupInputs(groupKey),
		RuntimeData:          ctx.RuntimeData,
		DraftUser:            ctx.DraftUser,
		AuthenticatedMethods: ctx.AuthenticatedMethods,
	}
	if executor != nil {
		nodeCtx.ExecutorName = executor.GetName()
		nodeCtx.Properties = executor.GetProperties()
	}
	if nodeCtx.NodeInputData == nil {
		nodeCtx.NodeInputData = make([]InputData, 0)
	}
	return nodeCtx
}

// DraftUser accumulates the identity being built up by a flow before provisioning.
type DraftUser struct {
	UserID          string            `json:"userId,omitempty"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	Attributes      map[string]string `json:"attributes"`
	Credentials     map[string]string `json:"credentials"`
	VerifiedMethods []string          `json:"verifiedMethods"`
}

// NewDraftUser creates an empty draft user.
func NewDraftUser() *DraftUser {
	return &DraftUser{
		Attributes:  make(map[string]string),
		Credentials: make(map[string]string),
	}
}

// SetAttribute records a collected attribute on the draft user.
func (u *DraftUser) SetAttribute(name, value string) {
	if u.Attributes == nil {
		u.Attributes = make(map[string]string)
	}
	u.Attributes[name] = value
}

// SetCredential records an enrolled credential on the draft user.
func (u *DraftUser) SetCredential(credentialType, value string) {
	if u.Credentials == nil {
		u.Credentials = make(map[string]string)
	}
	u.Credentials[credentialType] = value
}

// AddVerifiedMethod records a verification method that has completed for the draft user.
func (u *DraftUser) AddVerifiedMethod(method string) {
	for _, m := range u.VerifiedMethods {
		if m == method {
			return
		}
	}
	u.VerifiedMethods = append(u.VerifiedMethods, method)
}

// NodeContext holds the context handed to an executor for a single node execution.
type NodeContext struct {
	FlowID          string
	FlowType        constants.FlowType
	AppID           string
	NodeID          string
	CurrentActionID string

	ExecutorName string
	Properties   map[string]string

	NodeInputData []InputData
	UserInputData map[string]string
	RuntimeData   map[string]string

	DraftUser            *DraftUser
	AuthenticatedMethods []string
}

// InputData represents a single input requirement declared by a node or executor.
type InputData struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	Regex     string   `json:"regex,omitempty"`
	Options   []string `json:"options,omitempty"`
	Order     int      `json:"order,omitempty"`
	PromptKey string   `json:"promptKey,omitempty"`
}

// Action represents an action the user can take to continue a flow step.
type Action struct {
	Type constants.ActionType `json:"type"`
	ID   string               `json:"id"`
}

// NodeResponse represents the outcome of a single node execution.
type NodeResponse struct {
	Status         constants.NodeStatus
	Type           constants.NodeResponseType
	FailureReason  string
	RequiredData   []InputData
	Actions        []Action
	AdditionalData map[string]string
	RuntimeData    map[string]string
	NextNodeID     string
	Assertion      string
}

// FlowStep represents the outcome of an individual flow step.
type FlowStep struct {
	FlowID        string
	StepID        string
	Type          constants.FlowStepType
	Status        constants.FlowStatus
	Data          FlowData
	Assertion     string
	FailureReason string
}

// FlowData holds the data returned by a flow execution step.
type FlowData struct {
	Inputs         []InputData       `json:"inputs,omitempty"`
	Actions        []Action          `json:"actions,omitempty"`
	AdditionalData map[string]string `json:"additionalData,omitempty"`
}

// FlowRequest represents the flow execution API request body.
type FlowRequest struct {
	ApplicationID string            `json:"applicationId"`
	FlowType      string            `json:"flowType"`
	FlowID        string            `json:"flowId"`
	ActionID      string            `json:"actionId"`
	Inputs        map[string]string `json:"inputs"`
}

// FlowResponse represents the flow execution API response body.
type FlowResponse struct {
	FlowID        string   `json:"flowId"`
	StepID        string   `json:"stepId,omitempty"`
	FlowStatus    string   `json:"flowStatus"`
	Type          string   `json:"type,omitempty"`
	Data          FlowData `json:"data,omitempty"`
	Assertion     string   `json:"assertion,omitempty"`
	FailureReason string   `json:"failureReason,omitempty"`
}
