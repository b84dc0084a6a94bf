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
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/utils"
)

// capabilityPhase binds one executor capability to its pause status.
type capabilityPhase struct {
	pauseStatus      constants.ExecutorStatus
	run              func(ctx *NodeContext) (*ExecutorResponse, error)
	isAuthentication bool
}

// capabilityPhases returns the phases implemented by the executor in the
// fixed precedence order: attribute collection, credential enrollment,
// verification, authentication.
func capabilityPhases(executor ExecutorInterface) []capabilityPhase {
	phases := make([]capabilityPhase, 0, 4)
	if collector, ok := executor.(AttributeCollector); ok {
		phases = append(phases, capabilityPhase{
			pauseStatus: constants.ExecAttributesRequired,
			run:         collector.CollectAttributes,
		})
	}
	if enroller, ok := executor.(CredentialEnroller); ok {
		phases = append(phases, capabilityPhase{
			pauseStatus: constants.ExecCredentialEnrollmentRequired,
			run:         enroller.EnrollCredential,
		})
	}
	if verifier, ok := executor.(Verifier); ok {
		phases = append(phases, capabilityPhase{
			pauseStatus: constants.ExecVerificationRequired,
			run:         verifier.Verify,
		})
	}
	if authenticator, ok := executor.(Authenticator); ok {
		phases = append(phases, capabilityPhase{
			pauseStatus:      constants.ExecAuthenticationRequired,
			run:              authenticator.Authenticate,
			isAuthentication: true,
		})
	}
	return phases
}

// IsAuthenticationExecutor reports whether the executor implements the
// authentication capability.
func IsAuthenticationExecutor(executor ExecutorInterface) bool {
	_, ok := executor.(Authenticator)
	return ok
}

// RunExecutor drives the executor through its capability phases, resuming
// from the status persisted under statusKey. Pending input requirements are
// recorded under groupKey. A completed executor is never re-driven.
func RunExecutor(engineCtx *EngineContext, executor ExecutorInterface, nodeID, statusKey,
	groupKey string, nodeInputData []InputData) (*ExecutorResponse, *serviceerror.ServiceError) {
	if executor == nil {
		return nil, &constants.ErrorNodeExecutorNotFound
	}

	status := engineCtx.ExecutorStatus(statusKey)
	if status == constants.ExecActionComplete {
		return &ExecutorResponse{Status: constants.ExecActionComplete}, nil
	}

	phases := capabilityPhases(executor)
	if len(phases) == 0 {
		svcErr := constants.ErrorNodeExecutorExecError
		svcErr.ErrorDescription = "executor " + executor.GetName() + " implements no capabilities"
		return nil, &svcErr
	}

	startIndex := 0
	for i, phase := range phases {
		if phase.pauseStatus == status {
			startIndex = i
			break
		}
	}

	nodeCtx := engineCtx.buildNodeContext(nodeID, groupKey, nodeInputData, executor)

	final := &ExecutorResponse{Status: constants.ExecActionComplete}
	for i := startIndex; i < len(phases); i++ {
		phase := phases[i]

		resp, err := phase.run(nodeCtx)
		if err != nil {
			svcErr := constants.ErrorNodeExecutorExecError
			svcErr.ErrorDescription = "Error executing node executor: " + err.Error()
			return nil, &svcErr
		}
		if resp == nil {
			return nil, &constants.ErrorNilResponseFromExecutor
		}
		if resp.Error != nil {
			engineCtx.ExecutorStatuses[statusKey] = constants.ExecFailure
			return nil, resp.Error
		}

		mergeExecutorResults(engineCtx, final, resp)

		switch resp.Status {
		case phase.pauseStatus:
			engineCtx.ExecutorStatuses[statusKey] = resp.Status
			engineCtx.PendingInputs[groupKey] = resp.RequiredData
			return resp, nil
		case constants.ExecActionComplete:
			if phase.isAuthentication {
				engineCtx.AuthenticatedMethods = append(engineCtx.AuthenticatedMethods, executor.GetName())
			}
		case constants.ExecFailure:
			engineCtx.ExecutorStatuses[statusKey] = constants.ExecFailure
			return resp, nil
		default:
			svcErr := constants.ErrorUnsupportedNodeResponseStatus
			svcErr.ErrorDescription = "unsupported status returned from the executor: " + string(resp.Status)
			return nil, &svcErr
		}
	}

	engineCtx.ExecutorStatuses[statusKey] = constants.ExecActionComplete
	delete(engineCtx.PendingInputs, groupKey)
	return final, nil
}

// mergeExecutorResults folds a phase response into the aggregate response and
// propagates runtime data onto the engine context.
func mergeExecutorResults(engineCtx *EngineContext, aggregate, resp *ExecutorResponse) {
	if len(resp.RuntimeData) > 0 {
		engineCtx.RuntimeData = utils.MergeStringMaps(engineCtx.RuntimeData, resp.RuntimeData)
		aggregate.RuntimeData = utils.MergeStringMaps(aggregate.RuntimeData, resp.RuntimeData)
	}
	if len(resp.AdditionalData) > 0 {
		aggregate.AdditionalData = utils.MergeStringMaps(aggregate.AdditionalData, resp.AdditionalData)
	}
	if resp.Assertion != "" {
		aggregate.Assertion = resp.Assertion
	}
}
