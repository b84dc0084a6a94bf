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
	"sort"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// PromptNode represents a node that collects input up front for the nodes it
// references, without advancing their execution. It declares the union of the
// referenced requirements in a single response.
type PromptNode struct {
	*Node
}

// NewPromptNode creates a new PromptNode with the given details.
func NewPromptNode(id string, isStartNode, isFinalNode bool) NodeInterface {
	return &PromptNode{
		Node: &Node{
			id:               id,
			nodeType:         constants.NodeTypePromptOnly,
			isStartNode:      isStartNode,
			isFinalNode:      isFinalNode,
			nextNodeList:     []string{},
			previousNodeList: []string{},
			inputData:        []InputData{},
		},
	}
}

// Execute collects the combined input requirements. The node pauses while any
// required input in the union is missing; missing optional inputs are declared
// alongside in the pause response but never block on their own.
func (n *PromptNode) Execute(ctx *EngineContext) (*NodeResponse, *serviceerror.ServiceError) {
	groups, svcErr := n.requirementGroups(ctx)
	if svcErr != nil {
		return nil, svcErr
	}

	missingUnion := make([]InputData, 0)
	blocked := false
	for groupKey, declared := range groups {
		supplied := ctx.GroupInputs(groupKey)

		missing, requiredMissing := missingInputData(declared, supplied)
		if len(missing) > 0 {
			ctx.PendingInputs[groupKey] = missing
			missingUnion = append(missingUnion, missing...)
		} else {
			delete(ctx.PendingInputs, groupKey)
		}
		if requiredMissing {
			blocked = true
		}
	}

	if !blocked {
		for groupKey := range groups {
			delete(ctx.PendingInputs, groupKey)
		}
		return &NodeResponse{Status: constants.NodeStatusComplete}, nil
	}

	sort.SliceStable(missingUnion, func(i, j int) bool {
		return missingUnion[i].Order < missingUnion[j].Order
	})

	return &NodeResponse{
		Status:         constants.NodeStatusIncomplete,
		Type:           constants.NodeResponseTypeView,
		RequiredData:   missingUnion,
		AdditionalData: make(map[string]string),
		RuntimeData:    make(map[string]string),
	}, nil
}

// requirementGroups resolves the declared requirements per requirement group:
// the node's own inputs plus the inputs of every referenced node.
func (n *PromptNode) requirementGroups(ctx *EngineContext) (map[string][]InputData,
	*serviceerror.ServiceError) {
	groups := make(map[string][]InputData)
	if len(n.inputData) > 0 {
		groups[n.id] = n.inputData
	}

	for _, refID := range n.collectsFrom {
		refNode, ok := ctx.Graph.GetNode(refID)
		if !ok {
			svcErr := constants.ErrorResolvingStepForPrompt
			svcErr.ErrorDescription = "referenced node " + refID + " not found in the flow graph"
			return nil, &svcErr
		}

		switch refNode.GetType() {
		case constants.NodeTypeAggregatedTasks:
			for _, config := range refNode.GetExecutorConfigs() {
				if config.Executor == nil {
					continue
				}
				groupKey := refID + "/" + config.Name
				groups[groupKey] = mergeInputData(config.Executor.GetDefaultInputs(), nil)
			}
		default:
			declared := refNode.GetInputData()
			configs := refNode.GetExecutorConfigs()
			if len(configs) > 0 && configs[0].Executor != nil {
				declared = mergeInputData(configs[0].Executor.GetDefaultInputs(), declared)
			}
			groups[refID] = declared
		}
	}

	return groups, nil
}

// Clone returns a deep copy of the node.
func (n *PromptNode) Clone() NodeInterface {
	return &PromptNode{Node: n.cloneBase()}
}
