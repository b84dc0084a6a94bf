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

// Package handler provides the HTTP handler for flow execution requests.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/apierror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// FlowExecutionHandler handles the flow execution API requests.
type FlowExecutionHandler struct {
	flowService flow.FlowExecServiceInterface
}

// NewFlowExecutionHandler creates a handler backed by the given flow execution service.
func NewFlowExecutionHandler(flowService flow.FlowExecServiceInterface) *FlowExecutionHandler {
	return &FlowExecutionHandler{
		flowService: flowService,
	}
}

// HandleFlowExecutionRequest handles a flow execution request: it starts a new
// flow or continues an existing one with the supplied inputs.
func (h *FlowExecutionHandler) HandleFlowExecutionRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecutionHandler"))

	var flowRequest model.FlowRequest
	if err := json.NewDecoder(r.Body).Decode(&flowRequest); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, constants.APIErrorFlowRequestJSONDecodeError, logger)
		return
	}

	flowStep, svcErr := h.flowService.Execute(r.Context(), flowRequest.ApplicationID, flowRequest.FlowID,
		flowRequest.ActionID, flowRequest.FlowType, flowRequest.Inputs)
	if svcErr != nil {
		h.writeServiceErrorResponse(w, svcErr, logger)
		return
	}

	flowResponse := buildFlowResponse(flowStep)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(flowResponse); err != nil {
		logger.Error("Error encoding flow response", log.Error(err))
	}
}

// buildFlowResponse converts the engine's flow step into the API response body.
func buildFlowResponse(flowStep model.FlowStep) model.FlowResponse {
	return model.FlowResponse{
		FlowID:        flowStep.FlowID,
		StepID:        flowStep.StepID,
		FlowStatus:    string(flowStep.Status),
		Type:          string(flowStep.Type),
		Data:          flowStep.Data,
		Assertion:     flowStep.Assertion,
		FailureReason: flowStep.FailureReason,
	}
}

// writeServiceErrorResponse maps a service error to the HTTP status code and
// error body. Client errors map to 400; everything else is a 500.
func (h *FlowExecutionHandler) writeServiceErrorResponse(w http.ResponseWriter,
	svcErr *serviceerror.ServiceError, logger *log.Logger) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
	}

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	writeErrorResponse(w, statusCode, errResp, logger)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, errResp apierror.ErrorResponse,
	logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
	}
}
