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

package model

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// engagedAuthenticatorKeyPrefix namespaces the engaged authenticator runtime
// data entry per aggregated node.
const engagedAuthenticatorKeyPrefix = "engagedAuthenticator:"

// AggregatedTasksNode represents a node that drives several executors as one
// unit. Non-authentication executors are driven on every pass. At most one
// authentication executor is engaged: automatically when it is the only one
// configured, otherwise by an explicit user action.
type AggregatedTasksNode struct {
	*Node
}

// NewAggregatedTasksNode creates a new AggregatedTasksNode with the given details.
func NewAggregatedTasksNode(id string, isStartNode, isFinalNode bool) NodeInterface {
	return &AggregatedTasksNode{
		Node: &Node{
			id:               id,
			nodeType:         constants.NodeTypeAggregatedTasks,
			isStartNode:      isStartNode,
			isFinalNode:      isFinalNode,
			nextNodeList:     []string{},
			previousNodeList: []string{},
			inputData:        []InputData{},
		},
	}
}

// Execute drives all configured executors and aggregates their outcomes. The
// node stays incomplete until every driven executor reaches completion.
func (n *AggregatedTasksNode) Execute(ctx *EngineContext) (*NodeResponse, *serviceerror.ServiceError) {
	configs := n.GetExecutorConfigs()
	if len(configs) == 0 {
		return nil, &constants.ErrorNodeExecutorNotFound
	}

	var authConfigs []*ExecutorConfig
	var taskConfigs []*ExecutorConfig
	for _, config := range configs {
		if config.Executor == nil {
			return nil, &constants.ErrorNodeExecutorNotFound
		}
		if IsAuthenticationExecutor(config.Executor) {
			authConfigs = append(authConfigs, config)
		} else {
			taskConfigs = append(taskConfigs, config)
		}
	}

	aggregate := &NodeResponse{
		Status:         constants.NodeStatusComplete,
		RequiredData:   make([]InputData, 0),
		Actions:        make([]Action, 0),
		AdditionalData: make(map[string]string),
		RuntimeData:    make(map[string]string),
	}

	for _, config := range taskConfigs {
		if svcErr := n.driveExecutor(ctx, config, aggregate); svcErr != nil {
			return nil, svcErr
		}
		if aggregate.Status == constants.NodeStatusFailure {
			return aggregate, nil
		}
	}

	if len(authConfigs) > 0 {
		if svcErr := n.driveAuthenticator(ctx, authConfigs, aggregate); svcErr != nil {
			return nil, svcErr
		}
	}

	return aggregate, nil
}

// driveExecutor runs one executor and folds the outcome into the aggregate response.
func (n *AggregatedTasksNode) driveExecutor(ctx *EngineContext, config *ExecutorConfig,
	aggregate *NodeResponse) *serviceerror.ServiceError {
	statusKey := n.id + "/" + config.Name

	execResp, svcErr := RunExecutor(ctx, config.Executor, n.id, statusKey, statusKey, nil)
	if svcErr != nil {
		return svcErr
	}

	resp := buildNodeResponse(execResp)
	switch resp.Status {
	case constants.NodeStatusComplete:
		// Keep the aggregate status as is.
	case constants.NodeStatusIncomplete:
		aggregate.Status = constants.NodeStatusIncomplete
		aggregate.Type = constants.NodeResponseTypeView
		aggregate.RequiredData = append(aggregate.RequiredData, resp.RequiredData...)
	case constants.NodeStatusFailure:
		aggregate.Status = constants.NodeStatusFailure
		aggregate.FailureReason = resp.FailureReason
	}

	for k, v := range resp.AdditionalData {
		aggregate.AdditionalData[k] = v
	}
	for k, v := range resp.RuntimeData {
		aggregate.RuntimeData[k] = v
	}
	if resp.Assertion != "" {
		aggregate.Assertion = resp.Assertion
	}
	return nil
}

// driveAuthenticator resolves which authentication executor to engage and
// drives it. With several candidates and none engaged, the node pauses with
// one action per candidate.
func (n *AggregatedTasksNode) driveAuthenticator(ctx *EngineContext, authConfigs []*ExecutorConfig,
	aggregate *NodeResponse) *serviceerror.ServiceError {
	engagedKey := engagedAuthenticatorKeyPrefix + n.id
	engagedName := ctx.RuntimeData[engagedKey]

	if len(authConfigs) == 1 {
		engagedName = authConfigs[0].Name
	} else if ctx.CurrentActionID != "" {
		selected := n.findAuthConfig(authConfigs, ctx.CurrentActionID)
		if selected == nil {
			svcErr := constants.ErrorInvalidActionSelection
			svcErr.ErrorDescription = "Action " + ctx.CurrentActionID +
				" does not match an authenticator for the current step"
			return &svcErr
		}
		if engagedName != "" && engagedName != selected.Name {
			return &constants.ErrorMultipleAuthenticatorsEngaged
		}
		engagedName = selected.Name
	}

	if engagedName == "" {
		aggregate.Status = constants.NodeStatusIncomplete
		aggregate.Type = constants.NodeResponseTypeView
		for _, config := range authConfigs {
			aggregate.Actions = append(aggregate.Actions, Action{
				Type: constants.ActionTypeView,
				ID:   config.Name,
			})
		}
		return nil
	}

	config := n.findAuthConfig(authConfigs, engagedName)
	if config == nil {
		return &constants.ErrorNodeExecutorNotFound
	}
	ctx.RuntimeData[engagedKey] = engagedName

	return n.driveExecutor(ctx, config, aggregate)
}

func (n *AggregatedTasksNode) findAuthConfig(authConfigs []*ExecutorConfig, name string) *ExecutorConfig {
	for _, config := range authConfigs {
		if config.Name == name {
			return config
		}
	}
	return nil
}

// Clone returns a deep copy of the node.
func (n *AggregatedTasksNode) Clone() NodeInterface {
	return &AggregatedTasksNode{Node: n.cloneBase()}
}
