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
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
)

type PromptNodeTestSuite struct {
	suite.Suite
}

func TestPromptNodeTestSuite(t *testing.T) {
	suite.Run(t, new(PromptNodeTestSuite))
}

// newPromptGraph builds a graph with a prompt node collecting for a task node
// and one executor of an aggregated node.
func (s *PromptNodeTestSuite) newPromptGraph() (GraphInterface, NodeInterface) {
	graph := NewGraph("auth_flow_config_test", constants.FlowTypeAuthentication)

	prompt := NewPromptNode("prompt", true, false)
	prompt.SetInputData([]InputData{
		{Name: "username", Type: "string", Required: true, Order: 1},
	})
	prompt.SetCollectsFrom([]string{"collect-task", "mfa"})

	task := NewTaskExecutionNode("collect-task", false, false)
	task.SetExecutorConfigs([]*ExecutorConfig{{
		Name: "Collector",
		Executor: newStubCollector("Collector", []InputData{
			{Name: "email", Type: "string", Required: true, Order: 2},
		}),
	}})

	aggregated := NewAggregatedTasksNode("mfa", false, false)
	aggregated.SetExecutorConfigs([]*ExecutorConfig{{
		Name: "OTPCollector",
		Executor: newStubCollector("OTPCollector", []InputData{
			{Name: "mobile", Type: "string", Required: true, Order: 3},
		}),
	}})

	final := NewTaskExecutionNode("final", false, true)

	s.Require().NoError(graph.AddNode(prompt))
	s.Require().NoError(graph.AddNode(task))
	s.Require().NoError(graph.AddNode(aggregated))
	s.Require().NoError(graph.AddNode(final))
	s.Require().NoError(graph.AddEdge("prompt", "collect-task"))
	s.Require().NoError(graph.AddEdge("collect-task", "mfa"))
	s.Require().NoError(graph.AddEdge("mfa", "final"))
	s.Require().NoError(graph.SetStartNode("prompt"))

	return graph, prompt
}

func (s *PromptNodeTestSuite) TestDeclaresUnionOfRequirements() {
	graph, prompt := s.newPromptGraph()
	ctx := newEngineContext()
	ctx.Graph = graph

	resp, svcErr := prompt.Execute(ctx)
	s.Require().Nil(svcErr)
	s.Equal(constants.NodeStatusIncomplete, resp.Status)
	s.Equal(constants.NodeResponseTypeView, resp.Type)

	names := make([]string, 0, len(resp.RequiredData))
	for _, input := range resp.RequiredData {
		names = append(names, input.Name)
	}
	s.Equal([]string{"username", "email", "mobile"}, names)

	s.Contains(ctx.PendingInputs, "prompt")
	s.Contains(ctx.PendingInputs, "collect-task")
	s.Contains(ctx.PendingInputs, "mfa/OTPCollector")
}

func (s *PromptNodeTestSuite) TestCompletesWhenAllGroupsSatisfied() {
	graph, prompt := s.newPromptGraph()
	ctx := newEngineContext()
	ctx.Graph = graph

	_, svcErr := prompt.Execute(ctx)
	s.Require().Nil(svcErr)

	ctx.AddGroupInput("prompt", "username", "jane")
	ctx.AddGroupInput("collect-task", "email", "jane@example.com")
	ctx.AddGroupInput("mfa/OTPCollector", "mobile", "+14155550100")

	resp, svcErr := prompt.Execute(ctx)
	s.Require().Nil(svcErr)
	s.Equal(constants.NodeStatusComplete, resp.Status)
	s.Empty(ctx.PendingInputs)
}

func (s *PromptNodeTestSuite) TestPausesWhileAnyGroupIsMissing() {
	graph, prompt := s.newPromptGraph()
	ctx := newEngineContext()
	ctx.Graph = graph

	ctx.AddGroupInput("prompt", "username", "jane")
	ctx.AddGroupInput("collect-task", "email", "jane@example.com")

	resp, svcErr := prompt.Execute(ctx)
	s.Require().Nil(svcErr)
	s.Equal(constants.NodeStatusIncomplete, resp.Status)
	s.Len(resp.RequiredData, 1)
	s.Equal("mobile", resp.RequiredData[0].Name)
}

func (s *PromptNodeTestSuite) TestOptionalInputsDeclaredButNotBlocking() {
	graph := NewGraph("auth_flow_config_test", constants.FlowTypeAuthentication)
	prompt := NewPromptNode("prompt", true, false)
	prompt.SetInputData([]InputData{
		{Name: "username", Type: "string", Required: true, Order: 1},
		{Name: "nickname", Type: "string", Required: false, Order: 2},
	})
	s.Require().NoError(graph.AddNode(prompt))

	ctx := newEngineContext()
	ctx.Graph = graph

	// The pause declares the optional input alongside the required one so the
	// client can render and supply it.
	resp, svcErr := prompt.Execute(ctx)
	s.Require().Nil(svcErr)
	s.Equal(constants.NodeStatusIncomplete, resp.Status)
	s.Require().Len(resp.RequiredData, 2)
	s.Equal("username", resp.RequiredData[0].Name)
	s.Equal("nickname", resp.RequiredData[1].Name)
	s.False(resp.RequiredData[1].Required)
	s.Len(ctx.PendingInputs["prompt"], 2)

	// A missing optional input never blocks on its own.
	ctx.AddGroupInput("prompt", "username", "jane")
	resp, svcErr = prompt.Execute(ctx)
	s.Require().Nil(svcErr)
	s.Equal(constants.NodeStatusComplete, resp.Status)
	s.Empty(ctx.PendingInputs)
}

func (s *PromptNodeTestSuite) TestUnknownReferenceIsAnError() {
	graph := NewGraph("auth_flow_config_test", constants.FlowTypeAuthentication)
	prompt := NewPromptNode("prompt", true, false)
	prompt.SetCollectsFrom([]string{"missing"})
	s.Require().NoError(graph.AddNode(prompt))

	ctx := newEngineContext()
	ctx.Graph = graph

	_, svcErr := prompt.Execute(ctx)
	s.Require().NotNil(svcErr)
	s.Equal(constants.ErrorResolvingStepForPrompt.Code, svcErr.Code)
}
