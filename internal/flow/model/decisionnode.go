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

// DecisionNode represents a node that branches on a user choice. A selection,
// once made, is pinned for the remaining life of the flow.
type DecisionNode struct {
	*Node
}

// NewDecisionNode creates a new DecisionNode with the given details.
func NewDecisionNode(id string, isStartNode, isFinalNode bool) NodeInterface {
	return &DecisionNode{
		Node: &Node{
			id:               id,
			nodeType:         constants.NodeTypeDecision,
			isStartNode:      isStartNode,
			isFinalNode:      isFinalNode,
			nextNodeList:     []string{},
			previousNodeList: []string{},
			inputData:        []InputData{},
		},
	}
}

// Execute resolves the decision node based on the pinned selection or the
// triggered action.
func (n *DecisionNode) Execute(ctx *EngineContext) (*NodeResponse, *serviceerror.ServiceError) {
	if pinned, ok := ctx.PinnedDecisions[n.id]; ok {
		return &NodeResponse{
			Status:     constants.NodeStatusComplete,
			NextNodeID: pinned,
		}, nil
	}

	if ctx.CurrentActionID != "" {
		return n.triggerAction(ctx, ctx.CurrentActionID)
	}

	return n.prepareActionInput()
}

// triggerAction validates the user selection, pins it, and completes the node.
func (n *DecisionNode) triggerAction(ctx *EngineContext, actionID string) (*NodeResponse,
	*serviceerror.ServiceError) {
	nextNodeIDs := n.GetNextNodeList()
	if len(nextNodeIDs) == 0 {
		return &NodeResponse{
			Status:        constants.NodeStatusFailure,
			FailureReason: "No next nodes defined for the decision node.",
		}, nil
	}

	for _, candidate := range nextNodeIDs {
		if candidate == actionID {
			ctx.PinnedDecisions[n.id] = candidate
			return &NodeResponse{
				Status:     constants.NodeStatusComplete,
				NextNodeID: candidate,
			}, nil
		}
	}

	svcErr := constants.ErrorInvalidActionSelection
	svcErr.ErrorDescription = "Action " + actionID + " is not an option for the current step"
	return nil, &svcErr
}

// prepareActionInput returns the selectable options for the decision node.
func (n *DecisionNode) prepareActionInput() (*NodeResponse, *serviceerror.ServiceError) {
	nextNodeIDs := n.GetNextNodeList()
	if len(nextNodeIDs) == 0 {
		svcErr := constants.ErrorMovingToNextNode
		svcErr.ErrorDescription = "No outgoing edges defined for the decision node."
		return nil, &svcErr
	}

	actions := make([]Action, 0, len(nextNodeIDs))
	for _, nextNodeID := range nextNodeIDs {
		actions = append(actions, Action{
			Type: constants.ActionTypeView,
			ID:   nextNodeID,
		})
	}

	return &NodeResponse{
		Status:         constants.NodeStatusIncomplete,
		Type:           constants.NodeResponseTypeView,
		Actions:        actions,
		RequiredData:   make([]InputData, 0),
		AdditionalData: make(map[string]string),
		RuntimeData:    make(map[string]string),
	}, nil
}

// Clone returns a deep copy of the node.
func (n *DecisionNode) Clone() NodeInterface {
	return &DecisionNode{Node: n.cloneBase()}
}
