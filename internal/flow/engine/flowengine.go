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

// Package engine provides the flow engine for orchestrating flow executions.
package engine

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// FlowEngineInterface defines the interface for flow engine operations.
type FlowEngineInterface interface {
	Execute(ctx *model.EngineContext) (model.FlowStep, *serviceerror.ServiceError)
}

// FlowEngine walks a flow graph node by node until the flow pauses for user
// input, fails, or completes.
type FlowEngine struct{}

// NewFlowEngine creates a new flow engine.
func NewFlowEngine() *FlowEngine {
	return &FlowEngine{}
}

// Execute runs the flow from the current position in the context. The context
// is mutated as nodes execute and reflects the latest position when Execute
// returns.
func (e *FlowEngine) Execute(ctx *model.EngineContext) (model.FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowEngine"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	flowStep := model.FlowStep{
		FlowID: ctx.FlowID,
	}

	if ctx.Graph == nil {
		return flowStep, &constants.ErrorFlowGraphNotInitialized
	}
	ctx.EnsureInitialized()

	currentNode, svcErr := e.resolveCurrentNode(ctx)
	if svcErr != nil {
		return flowStep, svcErr
	}

	for {
		logger.Debug("Executing node", log.String(log.LoggerKeyNodeID, currentNode.GetID()),
			log.String("nodeType", string(currentNode.GetType())))

		nodeResp, svcErr := currentNode.Execute(ctx)
		if svcErr != nil {
			return flowStep, svcErr
		}
		if nodeResp == nil {
			return flowStep, &constants.ErrorNodeResponseStatusNotFound
		}

		// The action selection is consumed by the node it was sent to.
		ctx.CurrentActionID = ""
		ctx.CurrentNodeID = currentNode.GetID()
		ctx.CurrentNodeResponse = nodeResp

		switch nodeResp.Status {
		case constants.NodeStatusComplete:
			if currentNode.IsFinalNode() {
				flowStep.Status = constants.FlowStatusComplete
				flowStep.Assertion = nodeResp.Assertion
				logger.Debug("Flow completed", log.String(log.LoggerKeyNodeID, currentNode.GetID()))
				return flowStep, nil
			}
			nextNode, svcErr := e.resolveToNextNode(ctx, currentNode, nodeResp)
			if svcErr != nil {
				return flowStep, svcErr
			}
			currentNode = nextNode
		case constants.NodeStatusIncomplete:
			if nodeResp.Type != constants.NodeResponseTypeView {
				return flowStep, &constants.ErrorUnsupportedNodeResponseType
			}
			if svcErr := e.resolveStepForPrompt(ctx, currentNode, nodeResp, &flowStep); svcErr != nil {
				return flowStep, svcErr
			}
			logger.Debug("Flow paused for user input", log.String(log.LoggerKeyNodeID, currentNode.GetID()))
			return flowStep, nil
		case constants.NodeStatusFailure:
			flowStep.Status = constants.FlowStatusError
			flowStep.FailureReason = nodeResp.FailureReason
			logger.Debug("Flow failed", log.String(log.LoggerKeyNodeID, currentNode.GetID()),
				log.String("failureReason", nodeResp.FailureReason))
			return flowStep, nil
		default:
			return flowStep, &constants.ErrorUnsupportedNodeResponseStatus
		}
	}
}

// resolveCurrentNode returns the node to execute: the persisted position for a
// resumed flow, otherwise the graph's start node.
func (e *FlowEngine) resolveCurrentNode(ctx *model.EngineContext) (model.NodeInterface, *serviceerror.ServiceError) {
	if ctx.CurrentNodeID != "" {
		node, ok := ctx.Graph.GetNode(ctx.CurrentNodeID)
		if !ok {
			return nil, &constants.ErrorCurrentNodeNotFoundInGraph
		}
		return node, nil
	}

	startNode, err := ctx.Graph.GetStartNode()
	if err != nil {
		return nil, &constants.ErrorStartNodeNotFoundInGraph
	}
	return startNode, nil
}

// resolveToNextNode determines the next node after a completed node. Decision
// nodes name their successor explicitly; other nodes follow their single edge.
func (e *FlowEngine) resolveToNextNode(ctx *model.EngineContext, currentNode model.NodeInterface,
	nodeResp *model.NodeResponse) (model.NodeInterface, *serviceerror.ServiceError) {
	nextNodeID := nodeResp.NextNodeID
	if nextNodeID == "" {
		nextNodeList := currentNode.GetNextNodeList()
		if len(nextNodeList) == 0 {
			svcErr := constants.ErrorMovingToNextNode
			svcErr.ErrorDescription = "Node " + currentNode.GetID() + " completed but has no next node"
			return nil, &svcErr
		}
		nextNodeID = nextNodeList[0]
	}

	nextNode, ok := ctx.Graph.GetNode(nextNodeID)
	if !ok {
		svcErr := constants.ErrorMovingToNextNode
		svcErr.ErrorDescription = "Next node " + nextNodeID + " not found in the graph"
		return nil, &svcErr
	}

	ctx.CurrentNodeID = nextNodeID
	return nextNode, nil
}

// resolveStepForPrompt fills in the flow step returned to the client when the
// flow pauses for user input.
func (e *FlowEngine) resolveStepForPrompt(ctx *model.EngineContext, currentNode model.NodeInterface,
	nodeResp *model.NodeResponse, flowStep *model.FlowStep) *serviceerror.ServiceError {
	if len(nodeResp.RequiredData) == 0 && len(nodeResp.Actions) == 0 {
		svcErr := constants.ErrorResolvingStepForPrompt
		svcErr.ErrorDescription = "Node " + currentNode.GetID() +
			" paused without declaring required inputs or actions"
		return &svcErr
	}

	flowStep.StepID = currentNode.GetID()
	flowStep.Type = constants.StepTypeView
	flowStep.Status = constants.FlowStatusIncomplete
	flowStep.Data = model.FlowData{
		Inputs:         nodeResp.RequiredData,
		Actions:        nodeResp.Actions,
		AdditionalData: nodeResp.AdditionalData,
	}
	return nil
}
