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
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// stubCollector pauses until its required inputs are supplied and records the
// number of invocations.
type stubCollector struct {
	Executor
	invocations int
}

func newStubCollector(name string, inputs []InputData) *stubCollector {
	return &stubCollector{Executor: NewExecutor(name, inputs, nil)}
}

func (e *stubCollector) CollectAttributes(ctx *NodeContext) (*ExecutorResponse, error) {
	e.invocations++
	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &ExecutorResponse{
			Status:       constants.ExecAttributesRequired,
			RequiredData: missing,
		}, nil
	}
	return &ExecutorResponse{Status: constants.ExecActionComplete}, nil
}

// stubAuthenticator pauses until its inputs are supplied, then authenticates.
type stubAuthenticator struct {
	Executor
	fail        bool
	invocations int
}

func newStubAuthenticator(name string, fail bool) *stubAuthenticator {
	inputs := []InputData{{Name: "password", Type: "string", Required: true}}
	return &stubAuthenticator{Executor: NewExecutor(name, inputs, nil), fail: fail}
}

func (e *stubAuthenticator) Authenticate(ctx *NodeContext) (*ExecutorResponse, error) {
	e.invocations++
	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &ExecutorResponse{
			Status:       constants.ExecAuthenticationRequired,
			RequiredData: missing,
		}, nil
	}
	if e.fail {
		return &ExecutorResponse{
			Status:        constants.ExecFailure,
			FailureReason: "Invalid credentials provided",
		}, nil
	}
	return &ExecutorResponse{Status: constants.ExecActionComplete}, nil
}

// erroringExecutor returns a transport style error from its only capability.
type erroringExecutor struct {
	Executor
}

func (e *erroringExecutor) Verify(_ *NodeContext) (*ExecutorResponse, error) {
	return nil, errors.New("connection refused")
}

// fatalExecutor returns a fatal service error outcome.
type fatalExecutor struct {
	Executor
	svcErr serviceerror.ServiceError
}

func (e *fatalExecutor) CollectAttributes(_ *NodeContext) (*ExecutorResponse, error) {
	return &ExecutorResponse{
		Status: constants.ExecFailure,
		Error:  &e.svcErr,
	}, nil
}

// stubMultiPhase collects an email and then authenticates with a password.
type stubMultiPhase struct {
	Executor
	collectCalls int
	authCalls    int
}

func (e *stubMultiPhase) CollectAttributes(ctx *NodeContext) (*ExecutorResponse, error) {
	e.collectCalls++
	if ctx.UserInputData["email"] == "" {
		return &ExecutorResponse{
			Status:       constants.ExecAttributesRequired,
			RequiredData: []InputData{{Name: "email", Type: "string", Required: true}},
		}, nil
	}
	return &ExecutorResponse{Status: constants.ExecActionComplete}, nil
}

func (e *stubMultiPhase) Authenticate(ctx *NodeContext) (*ExecutorResponse, error) {
	e.authCalls++
	if ctx.UserInputData["password"] == "" {
		return &ExecutorResponse{
			Status:       constants.ExecAuthenticationRequired,
			RequiredData: []InputData{{Name: "password", Type: "string", Required: true}},
		}, nil
	}
	return &ExecutorResponse{Status: constants.ExecActionComplete}, nil
}

func newEngineContext() *EngineContext {
	ctx := &EngineContext{
		FlowID:   "flow-1",
		FlowType: constants.FlowTypeRegistration,
		AppID:    "app-1",
	}
	ctx.EnsureInitialized()
	return ctx
}

type CapabilityRunnerTestSuite struct {
	suite.Suite
}

func TestCapabilityRunnerTestSuite(t *testing.T) {
	suite.Run(t, new(CapabilityRunnerTestSuite))
}

func (s *CapabilityRunnerTestSuite) TestPauseAndResume() {
	ctx := newEngineContext()
	executor := newStubCollector("Collector", []InputData{
		{Name: "email", Type: "string", Required: true},
	})

	resp, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecAttributesRequired, resp.Status)
	s.Len(resp.RequiredData, 1)
	s.Equal("email", resp.RequiredData[0].Name)
	s.Equal(constants.ExecAttributesRequired, ctx.ExecutorStatus("node-1"))
	s.Contains(ctx.PendingInputs, "node-1")

	ctx.AddGroupInput("node-1", "email", "user@example.com")

	resp, svcErr = RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal(constants.ExecActionComplete, ctx.ExecutorStatus("node-1"))
	s.NotContains(ctx.PendingInputs, "node-1")
}

func (s *CapabilityRunnerTestSuite) TestCompletedExecutorIsNotReDriven() {
	ctx := newEngineContext()
	ctx.ExecutorStatuses["node-1"] = constants.ExecActionComplete
	executor := newStubCollector("Collector", nil)

	resp, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Zero(executor.invocations)
}

func (s *CapabilityRunnerTestSuite) TestAuthenticationCompletionRecordsMethod() {
	ctx := newEngineContext()
	ctx.AddGroupInput("node-1", "password", "secret")
	executor := newStubAuthenticator("BasicAuth", false)

	resp, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal([]string{"BasicAuth"}, ctx.AuthenticatedMethods)
}

func (s *CapabilityRunnerTestSuite) TestFailureStatusIsPersisted() {
	ctx := newEngineContext()
	ctx.AddGroupInput("node-1", "password", "wrong")
	executor := newStubAuthenticator("BasicAuth", true)

	resp, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecFailure, resp.Status)
	s.Equal("Invalid credentials provided", resp.FailureReason)
	s.Equal(constants.ExecFailure, ctx.ExecutorStatus("node-1"))
	s.Empty(ctx.AuthenticatedMethods)
}

func (s *CapabilityRunnerTestSuite) TestExecutorErrorIsWrapped() {
	ctx := newEngineContext()
	executor := &erroringExecutor{Executor: NewExecutor("Verifier", nil, nil)}

	_, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().NotNil(svcErr)
	s.Equal(constants.ErrorNodeExecutorExecError.Code, svcErr.Code)
}

func (s *CapabilityRunnerTestSuite) TestFatalOutcomeAbortsAndMarksFailure() {
	ctx := newEngineContext()
	executor := &fatalExecutor{
		Executor: NewExecutor("Provisioner", nil, nil),
		svcErr:   constants.ErrorUserProvisioningFailed,
	}

	_, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().NotNil(svcErr)
	s.Equal(serviceerror.ProvisioningErrorType, svcErr.Type)
	s.Equal(constants.ExecFailure, ctx.ExecutorStatus("node-1"))
}

func (s *CapabilityRunnerTestSuite) TestResumeSkipsCompletedPhases() {
	ctx := newEngineContext()
	executor := &stubMultiPhase{Executor: NewExecutor("EmailAuth", nil, nil)}

	resp, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecAttributesRequired, resp.Status)
	s.Equal(1, executor.collectCalls)

	ctx.AddGroupInput("node-1", "email", "user@example.com")
	resp, svcErr = RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecAuthenticationRequired, resp.Status)
	s.Equal(2, executor.collectCalls)
	s.Equal(1, executor.authCalls)

	ctx.AddGroupInput("node-1", "password", "secret")
	resp, svcErr = RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().Nil(svcErr)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal(2, executor.collectCalls)
	s.Equal(2, executor.authCalls)
}

func (s *CapabilityRunnerTestSuite) TestNoCapabilitiesIsAnError() {
	ctx := newEngineContext()
	executor := &Executor{}

	_, svcErr := RunExecutor(ctx, executor, "node-1", "node-1", "node-1", nil)
	s.Require().NotNil(svcErr)
	s.Equal(constants.ErrorNodeExecutorExecError.Code, svcErr.Code)
}
