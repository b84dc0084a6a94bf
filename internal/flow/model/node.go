/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// NodeInterface defines the interface for nodes in the flow graph.
type NodeInterface interface {
	Execute(ctx *EngineContext) (*NodeResponse, *serviceerror.ServiceError)
	GetID() string
	GetType() constants.NodeType
	IsStartNode() bool
	SetAsStartNode(isStart bool)
	IsFinalNode() bool
	SetAsFinalNode(isFinal bool)
	GetNextNodeList() []string
	AddNextNodeID(nextNodeID string)
	RemoveNextNodeID(nextNodeID string)
	GetPreviousNodeList() []string
	AddPreviousNodeID(previousNodeID string)
	RemovePreviousNodeID(previousNodeID string)
	GetInputData() []InputData
	SetInputData(inputData []InputData)
	GetExecutorConfigs() []*ExecutorConfig
	SetExecutorConfigs(configs []*ExecutorConfig)
	GetCollectsFrom() []string
	SetCollectsFrom(nodeIDs []string)
	Clone() NodeInterface
}

// NewNode creates a node of the given type with the given details.
func NewNode(id string, nodeType string, isStartNode, isFinalNode bool) (NodeInterface, error) {
	switch constants.NodeType(nodeType) {
	case constants.NodeTypeTaskExecution:
		return NewTaskExecutionNode(id, isStartNode, isFinalNode), nil
	case constants.NodeTypeDecision:
		return NewDecisionNode(id, isStartNode, isFinalNode), nil
	case constants.NodeTypePromptOnly:
		return NewPromptNode(id, isStartNode, isFinalNode), nil
	case constants.NodeTypeAggregatedTasks:
		return NewAggregatedTasksNode(id, isStartNode, isFinalNode), nil
	default:
		return nil, fmt.Errorf("unsupported node type: %s", nodeType)
	}
}

// Node provides the shared implementation for nodes.
type Node struct {
	id               string
	nodeType         constants.NodeType
	isStartNode      bool
	isFinalNode      bool
	nextNodeList     []string
	previousNodeList []string
	inputData        []InputData
	executorConfigs  []*ExecutorConfig
	collectsFrom     []string
}

// GetID returns the node's ID.
func (n *Node) GetID() string {
	return n.id
}

// GetType returns the node's type.
func (n *Node) GetType() constants.NodeType {
	return n.nodeType
}

// IsStartNode checks if the node is a start node.
func (n *Node) IsStartNode() bool {
	return n.isStartNode
}

// SetAsStartNode sets the node as a start node.
func (n *Node) SetAsStartNode(isStart bool) {
	n.isStartNode = isStart
}

// IsFinalNode checks if the node is a final node.
func (n *Node) IsFinalNode() bool {
	return n.isFinalNode
}

// SetAsFinalNode sets the node as a final node.
func (n *Node) SetAsFinalNode(isFinal bool) {
	n.isFinalNode = isFinal
}

// GetNextNodeList returns the IDs of the next nodes.
func (n *Node) GetNextNodeList() []string {
	return n.nextNodeList
}

// AddNextNodeID appends a node ID to the next node list.
func (n *Node) AddNextNodeID(nextNodeID string) {
	for _, id := range n.nextNodeList {
		if id == nextNodeID {
			return
		}
	}
	n.nextNodeList = append(n.nextNodeList, nextNodeID)
}

// RemoveNextNodeID removes a node ID from the next node list.
func (n *Node) RemoveNextNodeID(nextNodeID string) {
	n.nextNodeList = removeString(n.nextNodeList, nextNodeID)
}

// GetPreviousNodeList returns the IDs of the previous nodes.
func (n *Node) GetPreviousNodeList() []string {
	return n.previousNodeList
}

// AddPreviousNodeID appends a node ID to the previous node list.
func (n *Node) AddPreviousNodeID(previousNodeID string) {
	for _, id := range n.previousNodeList {
		if id == previousNodeID {
			return
		}
	}
	n.previousNodeList = append(n.previousNodeList, previousNodeID)
}

// RemovePreviousNodeID removes a node ID from the previous node list.
func (n *Node) RemovePreviousNodeID(previousNodeID string) {
	n.previousNodeList = removeString(n.previousNodeList, previousNodeID)
}

// GetInputData returns the input data declared for the node.
func (n *Node) GetInputData() []InputData {
	return n.inputData
}

// SetInputData sets the input data declared for the node.
func (n *Node) SetInputData(inputData []InputData) {
	n.inputData = inputData
}

// GetExecutorConfigs returns the executor configurations attached to the node.
func (n *Node) GetExecutorConfigs() []*ExecutorConfig {
	return n.executorConfigs
}

// SetExecutorConfigs sets the executor configurations attached to the node.
func (n *Node) SetExecutorConfigs(configs []*ExecutorConfig) {
	n.executorConfigs = configs
}

// GetCollectsFrom returns the IDs of the nodes this node collects input for.
func (n *Node) GetCollectsFrom() []string {
	return n.collectsFrom
}

// SetCollectsFrom sets the IDs of the nodes this node collects input for.
func (n *Node) SetCollectsFrom(nodeIDs []string) {
	n.collectsFrom = nodeIDs
}

// cloneBase returns a deep copy of the shared node state.
func (n *Node) cloneBase() *Node {
	cloned := &Node{
		id:               n.id,
		nodeType:         n.nodeType,
		isStartNode:      n.isStartNode,
		isFinalNode:      n.isFinalNode,
		nextNodeList:     append([]string{}, n.nextNodeList...),
		previousNodeList: append([]string{}, n.previousNodeList...),
		inputData:        append([]InputData{}, n.inputData...),
		collectsFrom:     append([]string{}, n.collectsFrom...),
	}
	for _, config := range n.executorConfigs {
		configCopy := &ExecutorConfig{
			Name:       config.Name,
			Properties: make(map[string]string, len(config.Properties)),
			Executor:   config.Executor,
		}
		for k, v := range config.Properties {
			configCopy.Properties[k] = v
		}
		cloned.executorConfigs = append(cloned.executorConfigs, configCopy)
	}
	return cloned
}

func removeString(slice []string, value string) []string {
	filtered := slice[:0]
	for _, v := range slice {
		if v != value {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// buildNodeResponse constructs a NodeResponse from the ExecutorResponse.
func buildNodeResponse(execResp *ExecutorResponse) *NodeResponse {
	nodeResp := &NodeResponse{
		FailureReason:  execResp.FailureReason,
		RequiredData:   execResp.RequiredData,
		AdditionalData: execResp.AdditionalData,
		RuntimeData:    execResp.RuntimeData,
		Assertion:      execResp.Assertion,
	}
	if nodeResp.AdditionalData == nil {
		nodeResp.AdditionalData = make(map[string]string)
	}
	if nodeResp.RuntimeData == nil {
		nodeResp.RuntimeData = make(map[string]string)
	}
	if nodeResp.RequiredData == nil {
		nodeResp.RequiredData = make([]InputData, 0)
	}
	if nodeResp.Actions == nil {
		nodeResp.Actions = make([]Action, 0)
	}

	switch execResp.Status {
	case constants.ExecActionComplete:
		nodeResp.Status = constants.NodeStatusComplete
		nodeResp.Type = ""
	case constants.ExecAttributesRequired, constants.ExecCredentialEnrollmentRequired,
		constants.ExecVerificationRequired, constants.ExecAuthenticationRequired:
		nodeResp.Status = constants.NodeStatusIncomplete
		nodeResp.Type = constants.NodeResponseTypeView
	case constants.ExecFailure:
		nodeResp.Status = constants.NodeStatusFailure
		nodeResp.Type = ""
	default:
		nodeResp.Status = constants.NodeStatusIncomplete
		nodeResp.Type = ""
	}

	return nodeResp
}
