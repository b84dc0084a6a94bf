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

// TaskExecutionNode represents a node that drives a single executor.
type TaskExecutionNode struct {
	*Node
}

// NewTaskExecutionNode creates a new TaskExecutionNode with the given details.
func NewTaskExecutionNode(id string, isStartNode, isFinalNode bool) NodeInterface {
	return &TaskExecutionNode{
		Node: &Node{
			id:               id,
			nodeType:         constants.NodeTypeTaskExecution,
			isStartNode:      isStartNode,
			isFinalNode:      isFinalNode,
			nextNodeList:     []string{},
			previousNodeList: []string{},
			inputData:        []InputData{},
		},
	}
}

// Execute drives the node's executor through its capability phases.
func (n *TaskExecutionNode) Execute(ctx *EngineContext) (*NodeResponse, *serviceerror.ServiceError) {
	configs := n.GetExecutorConfigs()
	if len(configs) == 0 || configs[0].Executor == nil {
		return nil, &constants.ErrorNodeExecutorNotFound
	}

	execResp, svcErr := RunExecutor(ctx, configs[0].Executor, n.id, n.id, n.id, n.inputData)
	if svcErr != nil {
		return nil, svcErr
	}

	return buildNodeResponse(execResp), nil
}

// Clone returns a deep copy of the node.
func (n *TaskExecutionNode) Clone() NodeInterface {
	return &TaskExecutionNode{Node: n.cloneBase()}
}
