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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
)

// GraphInterface defines the flow graph structure. Graphs are immutable once
// registered; the per-flow position lives in the engine context.
type GraphInterface interface {
	GetID() string
	GetType() constants.FlowType
	AddNode(node NodeInterface) error
	GetNode(nodeID string) (NodeInterface, bool)
	GetNodes() map[string]NodeInterface
	SetNodes(nodes map[string]NodeInterface)
	AddEdge(fromNodeID, toNodeID string) error
	RemoveEdge(fromNodeID, toNodeID string) error
	GetEdges() map[string][]string
	SetStartNode(nodeID string) error
	GetStartNodeID() string
	GetStartNode() (NodeInterface, error)
	Clone(newID string, newType constants.FlowType) (GraphInterface, error)
	ToJSON() (string, error)
}

// Graph implements the GraphInterface for the flow execution.
type Graph struct {
	id          string
	flowType    constants.FlowType
	nodes       map[string]NodeInterface
	edges       map[string][]string
	startNodeID string
}

// NewGraph creates a new Graph with the given ID and flow type.
func NewGraph(id string, flowType constants.FlowType) GraphInterface {
	return &Graph{
		id:       id,
		flowType: flowType,
		nodes:    make(map[string]NodeInterface),
		edges:    make(map[string][]string),
	}
}

// GetID returns the graph's ID.
func (g *Graph) GetID() string {
	return g.id
}

// GetType returns the flow type of the graph.
func (g *Graph) GetType() constants.FlowType {
	return g.flowType
}

// AddNode adds a node to the graph.
func (g *Graph) AddNode(node NodeInterface) error {
	if node == nil {
		return errors.New("node cannot be nil")
	}
	if _, exists := g.nodes[node.GetID()]; exists {
		return fmt.Errorf("node with ID %s already exists in the graph", node.GetID())
	}
	g.nodes[node.GetID()] = node
	return nil
}

// GetNode retrieves a node by its ID.
func (g *Graph) GetNode(nodeID string) (NodeInterface, bool) {
	node, ok := g.nodes[nodeID]
	return node, ok
}

// GetNodes returns all nodes in the graph.
func (g *Graph) GetNodes() map[string]NodeInterface {
	return g.nodes
}

// SetNodes replaces the nodes of the graph.
func (g *Graph) SetNodes(nodes map[string]NodeInterface) {
	g.nodes = nodes
}

// AddEdge adds an edge from one node to another.
func (g *Graph) AddEdge(fromNodeID, toNodeID string) error {
	fromNode, ok := g.nodes[fromNodeID]
	if !ok {
		return fmt.Errorf("node with ID %s not found in the graph", fromNodeID)
	}
	toNode, ok := g.nodes[toNodeID]
	if !ok {
		return fmt.Errorf("node with ID %s not found in the graph", toNodeID)
	}

	g.edges[fromNodeID] = append(g.edges[fromNodeID], toNodeID)
	fromNode.AddNextNodeID(toNodeID)
	toNode.AddPreviousNodeID(fromNodeID)
	return nil
}

// RemoveEdge removes an edge from one node to another.
func (g *Graph) RemoveEdge(fromNodeID, toNodeID string) error {
	fromNode, ok := g.nodes[fromNodeID]
	if !ok {
		return fmt.Errorf("node with ID %s not found in the graph", fromNodeID)
	}
	toNode, ok := g.nodes[toNodeID]
	if !ok {
		return fmt.Errorf("node with ID %s not found in the graph", toNodeID)
	}

	g.edges[fromNodeID] = removeString(g.edges[fromNodeID], toNodeID)
	if len(g.edges[fromNodeID]) == 0 {
		delete(g.edges, fromNodeID)
	}
	fromNode.RemoveNextNodeID(toNodeID)
	toNode.RemovePreviousNodeID(fromNodeID)
	return nil
}

// GetEdges returns the edges of the graph.
func (g *Graph) GetEdges() map[string][]string {
	return g.edges
}

// SetStartNode marks the node with the given ID as the start node.
func (g *Graph) SetStartNode(nodeID string) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("node with ID %s not found in the graph", nodeID)
	}
	if g.startNodeID != "" && g.startNodeID != nodeID {
		if prev, ok := g.nodes[g.startNodeID]; ok {
			prev.SetAsStartNode(false)
		}
	}
	node.SetAsStartNode(true)
	g.startNodeID = nodeID
	return nil
}

// GetStartNodeID returns the ID of the start node.
func (g *Graph) GetStartNodeID() string {
	return g.startNodeID
}

// GetStartNode returns the start node of the graph.
func (g *Graph) GetStartNode() (NodeInterface, error) {
	if g.startNodeID == "" {
		return nil, errors.New("start node is not set for the graph")
	}
	node, ok := g.nodes[g.startNodeID]
	if !ok {
		return nil, errors.New("start node not found in the graph")
	}
	return node, nil
}

// Clone creates a deep copy of the graph with a new ID and flow type.
func (g *Graph) Clone(newID string, newType constants.FlowType) (GraphInterface, error) {
	cloned := &Graph{
		id:       newID,
		flowType: newType,
		nodes:    make(map[string]NodeInterface, len(g.nodes)),
		edges:    make(map[string][]string, len(g.edges)),
	}
	for nodeID, node := range g.nodes {
		cloned.nodes[nodeID] = node.Clone()
	}
	for fromNodeID, toNodeIDs := range g.edges {
		cloned.edges[fromNodeID] = append([]string{}, toNodeIDs...)
	}
	if g.startNodeID != "" {
		if err := cloned.SetStartNode(g.startNodeID); err != nil {
			return nil, err
		}
	}
	return cloned, nil
}

// ToJSON converts the graph to a JSON string representation.
func (g *Graph) ToJSON() (string, error) {
	type jsonNode struct {
		ID        string      `json:"id"`
		Type      string      `json:"type"`
		IsStart   bool        `json:"isStart,omitempty"`
		IsFinal   bool        `json:"isFinal,omitempty"`
		InputData []InputData `json:"inputData,omitempty"`
		Executors []string    `json:"executors,omitempty"`
	}

	type jsonGraph struct {
		ID          string              `json:"id"`
		Type        string              `json:"type"`
		Nodes       map[string]jsonNode `json:"nodes"`
		Edges       map[string][]string `json:"edges"`
		StartNodeID string              `json:"startNodeId"`
	}

	out := jsonGraph{
		ID:          g.id,
		Type:        string(g.flowType),
		Nodes:       make(map[string]jsonNode, len(g.nodes)),
		Edges:       g.edges,
		StartNodeID: g.startNodeID,
	}
	for nodeID, node := range g.nodes {
		executorNames := make([]string, 0, len(node.GetExecutorConfigs()))
		for _, config := range node.GetExecutorConfigs() {
			executorNames = append(executorNames, config.Name)
		}
		out.Nodes[nodeID] = jsonNode{
			ID:        nodeID,
			Type:      string(node.GetType()),
			IsStart:   node.IsStartNode(),
			IsFinal:   node.IsFinalNode(),
			InputData: node.GetInputData(),
			Executors: executorNames,
		}
	}

	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
