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

// Package flow provides the flow execution service for orchestrating flows.
package flow

import (
	"context"
	"strings"
	"sync"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/engine"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/flowmgt"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/store"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/config"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/utils"
)

// FlowExecServiceInterface defines the interface for flow execution.
type FlowExecServiceInterface interface {
	Execute(ctx context.Context, appID, flowID, actionID, flowType string,
		inputs map[string]string) (model.FlowStep, *serviceerror.ServiceError)
}

// FlowExecService coordinates flow execution: it loads or creates the flow
// context, routes user inputs, runs the engine, and persists the outcome.
type FlowExecService struct {
	flowStore store.FlowStoreInterface
	flowMgt   flowmgt.FlowMgtServiceInterface
	engine    engine.FlowEngineInterface
	config    *config.Config

	// flowLocks serializes concurrent requests for the same flow ID.
	flowLocks sync.Map
}

// NewFlowExecService creates a flow execution service with the given dependencies.
func NewFlowExecService(flowStore store.FlowStoreInterface, flowMgtService flowmgt.FlowMgtServiceInterface,
	flowEngine engine.FlowEngineInterface, cfg *config.Config) *FlowExecService {
	return &FlowExecService{
		flowStore: flowStore,
		flowMgt:   flowMgtService,
		engine:    flowEngine,
		config:    cfg,
	}
}

// Execute processes a flow execution request. An empty flow ID starts a new
// flow; otherwise the persisted flow context is loaded and resumed.
func (s *FlowExecService) Execute(ctx context.Context, appID, flowID, actionID, flowType string,
	inputs map[string]string) (model.FlowStep, *serviceerror.ServiceError) {
	if flowID == "" {
		return s.initiateFlow(ctx, appID, actionID, flowType, inputs)
	}
	return s.continueFlow(ctx, flowID, actionID, inputs)
}

// initiateFlow starts a new flow for the application and runs it until it
// pauses, fails, or completes. The context is stored only when the flow pauses.
func (s *FlowExecService) initiateFlow(ctx context.Context, appID, actionID, flowType string,
	inputs map[string]string) (model.FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"))

	parsedFlowType, svcErr := parseFlowType(flowType)
	if svcErr != nil {
		return model.FlowStep{}, svcErr
	}
	if appID == "" {
		return model.FlowStep{}, &constants.ErrorInvalidAppID
	}

	graph, svcErr := s.getFlowGraph(appID, parsedFlowType)
	if svcErr != nil {
		return model.FlowStep{}, svcErr
	}

	flowID := utils.GenerateUUID()
	unlock := s.lockFlow(flowID)
	defer unlock()

	engineCtx := &model.EngineContext{
		FlowID:          flowID,
		FlowType:        parsedFlowType,
		AppID:           appID,
		Graph:           graph,
		CurrentActionID: actionID,
	}
	engineCtx.EnsureInitialized()

	if svcErr := s.routeUserInputs(engineCtx, inputs); svcErr != nil {
		return model.FlowStep{}, svcErr
	}

	flowStep, svcErr := s.engine.Execute(engineCtx)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ProvisioningErrorType {
			// Keep the context so the client can retry provisioning.
			if err := s.flowStore.StoreFlowContext(ctx, store.FromEngineContext(engineCtx)); err != nil {
				logger.Error("Failed to store flow context after provisioning failure",
					log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
			}
		}
		return model.FlowStep{}, svcErr
	}

	if flowStep.Status == constants.FlowStatusIncomplete {
		if err := s.flowStore.StoreFlowContext(ctx, store.FromEngineContext(engineCtx)); err != nil {
			logger.Error("Failed to store flow context",
				log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
			return model.FlowStep{}, &constants.ErrorUpdatingContextInStore
		}
	}

	return flowStep, nil
}

// continueFlow resumes a previously paused flow from its persisted context.
func (s *FlowExecService) continueFlow(ctx context.Context, flowID, actionID string,
	inputs map[string]string) (model.FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"),
		log.String(log.LoggerKeyFlowID, flowID))

	unlock := s.lockFlow(flowID)
	defer unlock()

	record, err := s.flowStore.GetFlowContext(ctx, flowID)
	if err != nil {
		logger.Error("Failed to load flow context from the store", log.Error(err))
		return model.FlowStep{}, &constants.ErrorFlowContextConversionFailed
	}
	if record == nil {
		// No context will ever show up for this flow ID again; drop the
		// lock entry so abandoned flows do not accumulate mutexes.
		s.flowLocks.Delete(flowID)
		return model.FlowStep{}, &constants.ErrorInvalidFlowID
	}

	graph, ok := s.flowMgt.GetGraph(record.GraphID)
	if !ok {
		return model.FlowStep{}, &constants.ErrorFlowGraphNotFound
	}

	engineCtx := record.ToEngineContext(graph)
	engineCtx.CurrentActionID = actionID

	if svcErr := s.routeUserInputs(engineCtx, inputs); svcErr != nil {
		return model.FlowStep{}, svcErr
	}

	flowStep, svcErr := s.engine.Execute(engineCtx)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ProvisioningErrorType {
			// Keep the context so the client can retry provisioning.
			if err := s.flowStore.UpdateFlowContext(ctx, store.FromEngineContext(engineCtx)); err != nil {
				logger.Error("Failed to update flow context after provisioning failure", log.Error(err))
			}
			return model.FlowStep{}, svcErr
		}
		s.removeFlowContext(ctx, flowID, logger)
		return model.FlowStep{}, svcErr
	}

	switch flowStep.Status {
	case constants.FlowStatusIncomplete:
		if err := s.flowStore.UpdateFlowContext(ctx, store.FromEngineContext(engineCtx)); err != nil {
			logger.Error("Failed to update flow context", log.Error(err))
			return model.FlowStep{}, &constants.ErrorUpdatingContextInStore
		}
	default:
		s.removeFlowContext(ctx, flowID, logger)
	}

	return flowStep, nil
}

// routeUserInputs validates the supplied inputs against the pending
// requirements and records them under the owning requirement groups. A value
// that fails its declared constraints rejects the whole request before any
// executor runs.
func (s *FlowExecService) routeUserInputs(engineCtx *model.EngineContext,
	inputs map[string]string) *serviceerror.ServiceError {
	if len(inputs) == 0 {
		return nil
	}

	for groupKey, pending := range engineCtx.PendingInputs {
		for _, input := range pending {
			value, supplied := inputs[input.Name]
			if !supplied {
				continue
			}
			if !model.ValidateInputValue(input, value) {
				svcErr := constants.ErrorInvalidUserInput
				svcErr.ErrorDescription = "Input " + input.Name + " does not satisfy the declared requirements"
				return &svcErr
			}
			engineCtx.AddGroupInput(groupKey, input.Name, value)
		}
	}
	return nil
}

// getFlowGraph resolves the flow graph configured for the application and flow type.
func (s *FlowExecService) getFlowGraph(appID string,
	flowType constants.FlowType) (model.GraphInterface, *serviceerror.ServiceError) {
	appConfig := s.config.GetApplicationFlowConfig(appID)
	if appConfig == nil {
		return nil, &constants.ErrorInvalidAppID
	}

	var graphID string
	switch flowType {
	case constants.FlowTypeAuthentication:
		graphID = appConfig.AuthFlowGraphID
		if graphID == "" && s.config.Flow.Authn.DefaultFlow != "" {
			graphID = constants.AuthFlowGraphPrefix + s.config.Flow.Authn.DefaultFlow
		}
		if graphID == "" {
			return nil, &constants.ErrorAuthFlowNotConfiguredForApplication
		}
	case constants.FlowTypeRegistration:
		if !appConfig.RegistrationEnabled {
			return nil, &constants.ErrorRegistrationFlowDisabled
		}
		graphID = appConfig.RegistrationFlowGraphID
		if graphID == "" && appConfig.AuthFlowGraphID != "" {
			graphID = constants.RegistrationFlowGraphPrefix +
				strings.TrimPrefix(appConfig.AuthFlowGraphID, constants.AuthFlowGraphPrefix)
		}
		if graphID == "" {
			return nil, &constants.ErrorRegisFlowNotConfiguredForApplication
		}
	}

	graph, ok := s.flowMgt.GetGraph(graphID)
	if !ok {
		return nil, &constants.ErrorFlowGraphNotFound
	}
	return graph, nil
}

// removeFlowContext deletes the persisted context for a finished flow.
func (s *FlowExecService) removeFlowContext(ctx context.Context, flowID string, logger *log.Logger) {
	if err := s.flowStore.DeleteFlowContext(ctx, flowID); err != nil {
		logger.Error("Failed to delete flow context", log.Error(err))
	}
	s.flowLocks.Delete(flowID)
}

// lockFlow acquires the per-flow mutex and returns the release function.
func (s *FlowExecService) lockFlow(flowID string) func() {
	value, _ := s.flowLocks.LoadOrStore(flowID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

// parseFlowType validates the flow type from the request. An empty value
// defaults to authentication.
func parseFlowType(flowType string) (constants.FlowType, *serviceerror.ServiceError) {
	switch constants.FlowType(flowType) {
	case constants.FlowTypeAuthentication, constants.FlowTypeRegistration:
		return constants.FlowType(flowType), nil
	case "":
		return constants.FlowTypeAuthentication, nil
	default:
		return "", &constants.ErrorInvalidFlowType
	}
}
