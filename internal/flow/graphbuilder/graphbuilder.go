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

// Package graphbuilder converts JSON graph definitions into validated flow graphs.
package graphbuilder

import (
	"errors"
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/jsonmodel"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
)

// ExecutorResolver resolves executor instances by name at graph load time.
type ExecutorResolver interface {
	Resolve(name string, properties map[string]string) (model.ExecutorInterface, error)
}

// BuildGraphFromDefinition converts a JSON graph definition into a validated
// graph. Executors are resolved once here so that graphs are immutable at
// runtime. Definitions with unknown executors, unknown node references,
// unreachable nodes, or cycles are rejected.
func BuildGraphFromDefinition(definition *jsonmodel.GraphDefinition,
	resolver ExecutorResolver) (model.GraphInterface, error) {
	if definition == nil {
		return nil, errors.New("graph definition cannot be nil")
	}
	if definition.ID == "" {
		return nil, errors.New("graph definition must have an ID")
	}
	if len(definition.Nodes) == 0 {
		return nil, errors.New("graph definition must have at least one node")
	}

	flowType, err := parseFlowType(definition.Type)
	if err != nil {
		return nil, err
	}

	graph := model.NewGraph(definition.ID, flowType)

	for i, nodeDef := range definition.Nodes {
		if nodeDef.ID == "" {
			return nil, fmt.Errorf("node at index %d must have an ID", i)
		}

		node, err := model.NewNode(nodeDef.ID, nodeDef.Type, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create node %s: %w", nodeDef.ID, err)
		}

		node.SetInputData(convertInputData(nodeDef.InputData))
		node.SetCollectsFrom(nodeDef.CollectsFrom)

		configs, err := resolveExecutorConfigs(&nodeDef, resolver)
		if err != nil {
			return nil, err
		}
		node.SetExecutorConfigs(configs)

		if err := graph.AddNode(node); err != nil {
			return nil, err
		}
	}

	for _, nodeDef := range definition.Nodes {
		for _, nextNodeID := range nodeDef.Next {
			if err := graph.AddEdge(nodeDef.ID, nextNodeID); err != nil {
				return nil, fmt.Errorf("failed to add edge from %s to %s: %w", nodeDef.ID, nextNodeID, err)
			}
		}
	}

	if err := validateGraph(graph, definition); err != nil {
		return nil, err
	}

	return graph, nil
}

// resolveExecutorConfigs resolves the executor instances for a node definition.
func resolveExecutorConfigs(nodeDef *jsonmodel.NodeDefinition,
	resolver ExecutorResolver) ([]*model.ExecutorConfig, error) {
	definitions := nodeDef.Executors
	if nodeDef.Executor != nil {
		definitions = append([]jsonmodel.ExecutorDefinition{*nodeDef.Executor}, definitions...)
	}
	if len(definitions) == 0 {
		return nil, nil
	}
	if resolver == nil {
		return nil, fmt.Errorf("node %s declares executors but no resolver is configured", nodeDef.ID)
	}

	configs := make([]*model.ExecutorConfig, 0, len(definitions))
	for _, execDef := range definitions {
		executor, err := resolver.Resolve(execDef.Name, execDef.Properties)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executor %s for node %s: %w",
				execDef.Name, nodeDef.ID, err)
		}
		configs = append(configs, &model.ExecutorConfig{
			Name:       execDef.Name,
			Properties: execDef.Properties,
			Executor:   executor,
		})
	}
	return configs, nil
}

// validateGraph determines the start and final nodes and rejects malformed graphs.
func validateGraph(graph model.GraphInterface, definition *jsonmodel.GraphDefinition) error {
	nodes := graph.GetNodes()

	startNodeID := ""
	for _, nodeDef := range definition.Nodes {
		node := nodes[nodeDef.ID]
		if len(node.GetPreviousNodeList()) == 0 {
			if startNodeID != "" {
				return fmt.Errorf("graph %s has multiple entry nodes: %s and %s",
					definition.ID, startNodeID, nodeDef.ID)
			}
			startNodeID = nodeDef.ID
		}
		if len(node.GetNextNodeList()) == 0 {
			node.SetAsFinalNode(true)
		}
	}
	if startNodeID == "" {
		return fmt.Errorf("graph %s has no entry node; the definition contains a cycle", definition.ID)
	}
	if err := graph.SetStartNode(startNodeID); err != nil {
		return err
	}

	if err := checkForCycles(graph, startNodeID); err != nil {
		return err
	}

	for nodeID := range nodes {
		if !isReachable(graph, startNodeID, nodeID) {
			return fmt.Errorf("node %s is not reachable from the start node", nodeID)
		}
	}

	for _, nodeDef := range definition.Nodes {
		for _, refID := range nodeDef.CollectsFrom {
			if _, ok := graph.GetNode(refID); !ok {
				return fmt.Errorf("node %s references unknown node %s", nodeDef.ID, refID)
			}
		}
	}

	return nil
}

// checkForCycles runs a depth first search over the graph edges and fails on
// any back edge. A cyclic definition is a configuration error, never a
// runtime hang.
func checkForCycles(graph model.GraphInterface, startNodeID string) error {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(graph.GetNodes()))

	var visit func(nodeID string) error
	visit = func(nodeID string) error {
		switch state[nodeID] {
		case inStack:
			return fmt.Errorf("cycle detected in the flow graph at node %s", nodeID)
		case done:
			return nil
		}
		state[nodeID] = inStack

		node, ok := graph.GetNode(nodeID)
		if !ok {
			return fmt.Errorf("node %s not found in the graph", nodeID)
		}
		for _, nextNodeID := range node.GetNextNodeList() {
			if err := visit(nextNodeID); err != nil {
				return err
			}
		}

		state[nodeID] = done
		return nil
	}

	return visit(startNodeID)
}

// isReachable reports whether the target node can be reached from the start node.
func isReachable(graph model.GraphInterface, startNodeID, targetNodeID string) bool {
	visited := make(map[string]bool)
	queue := []string{startNodeID}
	for len(queue) > 0 {
		nodeID := queue[0]
		queue = queue[1:]
		if nodeID == targetNodeID {
			return true
		}
		if visited[nodeID] {
			continue
		}
		visited[nodeID] = true

		if node, ok := graph.GetNode(nodeID); ok {
			queue = append(queue, node.GetNextNodeList()...)
		}
	}
	return false
}

func parseFlowType(flowType string) (constants.FlowType, error) {
	switch constants.FlowType(flowType) {
	case constants.FlowTypeAuthentication, constants.FlowTypeRegistration:
		return constants.FlowType(flowType), nil
	case "":
		return constants.FlowTypeAuthentication, nil
	default:
		return "", fmt.Errorf("unsupported flow type: %s", flowType)
	}
}

func convertInputData(definitions []jsonmodel.InputDefinition) []model.InputData {
	inputData := make([]model.InputData, 0, len(definitions))
	for _, def := range definitions {
		inputData = append(inputData, model.InputData{
			Name:      def.Name,
			Type:      def.Type,
			Required:  def.Required,
			Regex:     def.Regex,
			Options:   def.Options,
			Order:     def.Order,
			PromptKey: def.PromptKey,
		})
	}
	return inputData
}
