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

package graphbuilder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/jsonmodel"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
)

// stubExecutor is a minimal executor used to satisfy graph definitions.
type stubExecutor struct {
	model.Executor
}

func (e *stubExecutor) CollectAttributes(_ *model.NodeContext) (*model.ExecutorResponse, error) {
	return &model.ExecutorResponse{Status: constants.ExecActionComplete}, nil
}

// stubResolver resolves a fixed set of executor names.
type stubResolver struct {
	known map[string]bool
}

func (r *stubResolver) Resolve(name string, properties map[string]string) (model.ExecutorInterface, error) {
	if !r.known[name] {
		return nil, fmt.Errorf("unknown executor: %s", name)
	}
	executor := &stubExecutor{Executor: model.NewExecutor(name, nil, properties)}
	return executor, nil
}

type GraphBuilderTestSuite struct {
	suite.Suite
	resolver *stubResolver
}

func TestGraphBuilderTestSuite(t *testing.T) {
	suite.Run(t, new(GraphBuilderTestSuite))
}

func (s *GraphBuilderTestSuite) SetupTest() {
	s.resolver = &stubResolver{known: map[string]bool{
		"BasicAuthExecutor":  true,
		"AuthAssertExecutor": true,
	}}
}

func (s *GraphBuilderTestSuite) TestBuildsValidGraph() {
	definition := &jsonmodel.GraphDefinition{
		ID:   "auth_flow_config_basic",
		Type: "AUTHENTICATION",
		Nodes: []jsonmodel.NodeDefinition{
			{
				ID:       "authenticate",
				Type:     "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"},
				Next:     []string{"assert"},
			},
			{
				ID:       "assert",
				Type:     "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "AuthAssertExecutor"},
			},
		},
	}

	graph, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().NoError(err)
	s.Equal("auth_flow_config_basic", graph.GetID())
	s.Equal(constants.FlowTypeAuthentication, graph.GetType())
	s.Equal("authenticate", graph.GetStartNodeID())

	assertNode, ok := graph.GetNode("assert")
	s.Require().True(ok)
	s.True(assertNode.IsFinalNode())
	s.Require().Len(assertNode.GetExecutorConfigs(), 1)
	s.NotNil(assertNode.GetExecutorConfigs()[0].Executor)
}

func (s *GraphBuilderTestSuite) TestUnknownExecutorIsRejected() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_bad",
		Nodes: []jsonmodel.NodeDefinition{
			{
				ID:       "authenticate",
				Type:     "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "NoSuchExecutor"},
			},
		},
	}

	_, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().Error(err)
	s.Contains(err.Error(), "NoSuchExecutor")
}

func (s *GraphBuilderTestSuite) TestCycleIsRejected() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_cycle",
		Nodes: []jsonmodel.NodeDefinition{
			{ID: "start", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"a"}},
			{ID: "a", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"b"}},
			{ID: "b", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"a"}},
		},
	}

	_, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().Error(err)
	s.Contains(err.Error(), "cycle")
}

func (s *GraphBuilderTestSuite) TestMultipleEntryNodesAreRejected() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_entries",
		Nodes: []jsonmodel.NodeDefinition{
			{ID: "a", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"c"}},
			{ID: "b", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"c"}},
			{ID: "c", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "AuthAssertExecutor"}},
		},
	}

	_, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().Error(err)
	s.Contains(err.Error(), "multiple entry nodes")
}

func (s *GraphBuilderTestSuite) TestUnreachableNodeIsRejected() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_unreachable",
		Nodes: []jsonmodel.NodeDefinition{
			{ID: "start", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"end"}},
			{ID: "end", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "AuthAssertExecutor"}},
			{ID: "island-a", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"island-b"}},
			{ID: "island-b", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}, Next: []string{"island-a"}},
		},
	}

	_, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().Error(err)
	s.Contains(err.Error(), "not reachable")
}

func (s *GraphBuilderTestSuite) TestUnknownCollectsFromReferenceIsRejected() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_refs",
		Nodes: []jsonmodel.NodeDefinition{
			{ID: "prompt", Type: "PROMPT_ONLY", CollectsFrom: []string{"missing"}, Next: []string{"end"}},
			{ID: "end", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "AuthAssertExecutor"}},
		},
	}

	_, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown node")
}

func (s *GraphBuilderTestSuite) TestDefaultsToAuthenticationFlowType() {
	definition := &jsonmodel.GraphDefinition{
		ID: "auth_flow_config_default",
		Nodes: []jsonmodel.NodeDefinition{
			{ID: "only", Type: "TASK_EXECUTION",
				Executor: &jsonmodel.ExecutorDefinition{Name: "BasicAuthExecutor"}},
		},
	}

	graph, err := BuildGraphFromDefinition(definition, s.resolver)
	s.Require().NoError(err)
	s.Equal(constants.FlowTypeAuthentication, graph.GetType())
}

func (s *GraphBuilderTestSuite) TestNilDefinitionIsRejected() {
	_, err := BuildGraphFromDefinition(nil, s.resolver)
	s.Require().Error(err)
}
