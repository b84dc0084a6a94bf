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

// Package flowmgt provides the flow management service implementation.
package flowmgt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/graphbuilder"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/jsonmodel"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// provisioningNodeID is the ID of the node spliced into inferred registration graphs.
const provisioningNodeID = "provisioning"

// provisioningExecutorName is the executor driven by the spliced provisioning node.
const provisioningExecutorName = "ProvisioningExecutor"

// FlowMgtServiceInterface defines the interface for the flow management service.
type FlowMgtServiceInterface interface {
	Init() error
	RegisterGraph(graphID string, g model.GraphInterface)
	GetGraph(graphID string) (model.GraphInterface, bool)
	IsValidGraphID(graphID string) bool
}

// FlowMgtService loads graph definitions from the configured directory and
// keeps the registered graphs in memory.
type FlowMgtService struct {
	flowConfig config.FlowConfig
	home       string
	resolver   graphbuilder.ExecutorResolver

	graphs map[string]model.GraphInterface
	mu     sync.RWMutex
}

// NewFlowMgtService creates a flow management service with the given
// configuration and executor resolver.
func NewFlowMgtService(flowConfig config.FlowConfig, home string,
	resolver graphbuilder.ExecutorResolver) *FlowMgtService {
	return &FlowMgtService{
		flowConfig: flowConfig,
		home:       home,
		resolver:   resolver,
		graphs:     make(map[string]model.GraphInterface),
	}
}

// Init initializes the FlowMgtService by loading graph configurations into runtime.
func (s *FlowMgtService) Init() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowMgtService"))
	logger.Debug("Initializing the flow management service")

	configDir := s.flowConfig.GraphDirectory
	if configDir == "" {
		logger.Info("Graph directory is not set. No graphs will be loaded.")
		return nil
	}

	if !filepath.IsAbs(configDir) {
		configDir = filepath.Join(s.home, configDir)
	}
	configDir = filepath.Clean(configDir)

	logger.Debug("Loading graphs from config directory", log.String("configDir", configDir))

	files, err := os.ReadDir(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Config directory does not exist. No graphs will be loaded.",
				log.String("configDir", configDir))
			return nil
		}
		return fmt.Errorf("failed to read config directory %s: %w", configDir, err)
	}

	// Process each JSON file in the directory. A malformed file is logged
	// and skipped; it never fails the whole load.
	flowGraphs := make(map[string]model.GraphInterface)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		filePath := filepath.Clean(filepath.Join(configDir, file.Name()))

		fileContent, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn("Failed to read graph file", log.String("filePath", filePath), log.Error(err))
			continue
		}

		var jsonGraph jsonmodel.GraphDefinition
		if err := json.Unmarshal(fileContent, &jsonGraph); err != nil {
			logger.Warn("Failed to parse JSON in file", log.String("filePath", filePath), log.Error(err))
			continue
		}

		graphModel, err := graphbuilder.BuildGraphFromDefinition(&jsonGraph, s.resolver)
		if err != nil {
			logger.Warn("Failed to convert graph definition to graph model",
				log.String("filePath", filePath), log.Error(err))
			continue
		}

		flowGraphs[graphModel.GetID()] = graphModel
	}

	// Register all loaded graphs, inferring a registration graph for each
	// authentication graph that does not have one configured.
	inferredGraphCount := 0
	for graphID, graph := range flowGraphs {
		registrationGraphID := s.getRegistrationGraphID(graphID)
		_, exists := flowGraphs[registrationGraphID]
		if !exists && graph.GetType() == constants.FlowTypeAuthentication {
			if err := s.createAndRegisterRegistrationGraph(registrationGraphID, graph, logger); err != nil {
				logger.Error("Failed creating registration graph", log.String("graphID", graphID), log.Error(err))
				continue
			}
			inferredGraphCount++
		}

		logger.Debug("Registering graph", log.String("graphType", string(graph.GetType())),
			log.String("graphID", graphID))
		s.RegisterGraph(graphID, graph)
	}

	logger.Debug("Flow management service initialized successfully",
		log.Int("configuredGraphCount", len(flowGraphs)), log.Int("inferredGraphCount", inferredGraphCount))

	return nil
}

// RegisterGraph registers a graph with the FlowMgtService by its ID.
func (s *FlowMgtService) RegisterGraph(graphID string, g model.GraphInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[graphID] = g
}

// GetGraph retrieves a graph by its ID.
func (s *FlowMgtService) GetGraph(graphID string) (model.GraphInterface, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[graphID]
	return g, ok
}

// IsValidGraphID checks if the provided graph ID is valid and exists in the service.
func (s *FlowMgtService) IsValidGraphID(graphID string) bool {
	if graphID == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.graphs[graphID]
	return exists
}

// getRegistrationGraphID constructs the registration graph ID from the auth graph ID.
func (s *FlowMgtService) getRegistrationGraphID(authGraphID string) string {
	return constants.RegistrationFlowGraphPrefix + strings.TrimPrefix(authGraphID, constants.AuthFlowGraphPrefix)
}

// createAndRegisterRegistrationGraph creates a registration graph from an authentication graph and registers it.
func (s *FlowMgtService) createAndRegisterRegistrationGraph(registrationGraphID string,
	authGraph model.GraphInterface, logger *log.Logger) error {
	registrationGraph, err := s.createRegistrationGraph(registrationGraphID, authGraph)
	if err != nil {
		return fmt.Errorf("failed to infer registration graph: %w", err)
	}

	logger.Debug("Registering inferred registration graph", log.String("graphID", registrationGraph.GetID()))
	s.RegisterGraph(registrationGraph.GetID(), registrationGraph)
	return nil
}

// createRegistrationGraph clones an authentication graph and splices a
// provisioning node in front of its final node.
func (s *FlowMgtService) createRegistrationGraph(registrationGraphID string,
	authGraph model.GraphInterface) (model.GraphInterface, error) {
	registrationGraph, err := authGraph.Clone(registrationGraphID, constants.FlowTypeRegistration)
	if err != nil {
		return nil, fmt.Errorf("failed to clone auth graph: %w", err)
	}

	// Find the final node to insert provisioning before it.
	finalNodeID := ""
	for nodeID, node := range registrationGraph.GetNodes() {
		if node.IsFinalNode() {
			finalNodeID = nodeID
			break
		}
	}
	if finalNodeID == "" {
		return nil, fmt.Errorf("no final node found in the authentication graph")
	}

	provisioningNode, err := s.createProvisioningNode()
	if err != nil {
		return nil, fmt.Errorf("failed to create provisioning node: %w", err)
	}
	if err := registrationGraph.AddNode(provisioningNode); err != nil {
		return nil, fmt.Errorf("failed to add provisioning node to registration graph: %w", err)
	}

	// Redirect the edges that lead to the final node through the provisioning node.
	for fromNodeID, toNodeIDs := range registrationGraph.GetEdges() {
		for _, toNodeID := range append([]string{}, toNodeIDs...) {
			if toNodeID != finalNodeID {
				continue
			}
			if err := registrationGraph.RemoveEdge(fromNodeID, toNodeID); err != nil {
				return nil, fmt.Errorf("failed to remove edge from %s to %s: %w", fromNodeID, toNodeID, err)
			}
			if err := registrationGraph.AddEdge(fromNodeID, provisioningNode.GetID()); err != nil {
				return nil, fmt.Errorf("failed to add edge from %s to provisioning node: %w", fromNodeID, err)
			}
		}
	}

	if err := registrationGraph.AddEdge(provisioningNode.GetID(), finalNodeID); err != nil {
		return nil, fmt.Errorf("failed to add edge from provisioning node to final node: %w", err)
	}

	return registrationGraph, nil
}

// createProvisioningNode creates the task execution node driving the provisioning executor.
func (s *FlowMgtService) createProvisioningNode() (model.NodeInterface, error) {
	provisioningNode, err := model.NewNode(
		provisioningNodeID,
		string(constants.NodeTypeTaskExecution),
		false,
		false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provisioning node: %w", err)
	}

	executor, err := s.resolver.Resolve(provisioningExecutorName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provisioning executor: %w", err)
	}
	provisioningNode.SetExecutorConfigs([]*model.ExecutorConfig{{
		Name:       provisioningExecutorName,
		Properties: make(map[string]string),
		Executor:   executor,
	}})

	return provisioningNode, nil
}
