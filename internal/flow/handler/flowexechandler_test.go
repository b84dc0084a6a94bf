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

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/apierror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// scriptedFlowService returns a canned flow step or error and records the
// request it received.
type scriptedFlowService struct {
	flowStep model.FlowStep
	svcErr   *serviceerror.ServiceError

	gotAppID    string
	gotFlowID   string
	gotActionID string
	gotFlowType string
	gotInputs   map[string]string
}

func (f *scriptedFlowService) Execute(_ context.Context, appID, flowID, actionID, flowType string,
	inputs map[string]string) (model.FlowStep, *serviceerror.ServiceError) {
	f.gotAppID = appID
	f.gotFlowID = flowID
	f.gotActionID = actionID
	f.gotFlowType = flowType
	f.gotInputs = inputs
	if f.svcErr != nil {
		return model.FlowStep{}, f.svcErr
	}
	return f.flowStep, nil
}

type FlowExecutionHandlerTestSuite struct {
	suite.Suite
}

func TestFlowExecutionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FlowExecutionHandlerTestSuite))
}

func (s *FlowExecutionHandlerTestSuite) post(handler *FlowExecutionHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/flow/execute", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.HandleFlowExecutionRequest(recorder, req)
	return recorder
}

func (s *FlowExecutionHandlerTestSuite) TestSuccessfulExecution() {
	service := &scriptedFlowService{
		flowStep: model.FlowStep{
			FlowID: "flow-1",
			StepID: "collect",
			Type:   constants.StepTypeView,
			Status: constants.FlowStatusIncomplete,
			Data: model.FlowData{
				Inputs: []model.InputData{{Name: "email", Type: "string", Required: true}},
			},
		},
	}
	handler := NewFlowExecutionHandler(service)

	recorder := s.post(handler, `{
		"applicationId": "app-1",
		"flowType": "AUTHENTICATION",
		"inputs": {"email": "jane@example.com"}
	}`)

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("application/json", recorder.Header().Get("Content-Type"))
	s.Equal("app-1", service.gotAppID)
	s.Equal("AUTHENTICATION", service.gotFlowType)
	s.Equal(map[string]string{"email": "jane@example.com"}, service.gotInputs)

	var response model.FlowResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal("flow-1", response.FlowID)
	s.Equal("collect", response.StepID)
	s.Equal(string(constants.FlowStatusIncomplete), response.FlowStatus)
	s.Require().Len(response.Data.Inputs, 1)
	s.Equal("email", response.Data.Inputs[0].Name)
}

func (s *FlowExecutionHandlerTestSuite) TestMalformedJSONIsABadRequest() {
	handler := NewFlowExecutionHandler(&scriptedFlowService{})

	recorder := s.post(handler, `{not json`)

	s.Equal(http.StatusBadRequest, recorder.Code)

	var errResp apierror.ErrorResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &errResp))
	s.Equal(constants.APIErrorFlowRequestJSONDecodeError.Code, errResp.Code)
}

func (s *FlowExecutionHandlerTestSuite) TestClientErrorMapsToBadRequest() {
	svcErr := constants.ErrorInvalidFlowID
	handler := NewFlowExecutionHandler(&scriptedFlowService{svcErr: &svcErr})

	recorder := s.post(handler, `{"flowId": "no-such-flow"}`)

	s.Equal(http.StatusBadRequest, recorder.Code)

	var errResp apierror.ErrorResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &errResp))
	s.Equal(constants.ErrorInvalidFlowID.Code, errResp.Code)
}

func (s *FlowExecutionHandlerTestSuite) TestServerErrorMapsToInternalServerError() {
	svcErr := constants.ErrorFlowGraphNotFound
	handler := NewFlowExecutionHandler(&scriptedFlowService{svcErr: &svcErr})

	recorder := s.post(handler, `{"applicationId": "app-1"}`)

	s.Equal(http.StatusInternalServerError, recorder.Code)
}

func (s *FlowExecutionHandlerTestSuite) TestProvisioningErrorMapsToInternalServerError() {
	svcErr := constants.ErrorUserProvisioningFailed
	handler := NewFlowExecutionHandler(&scriptedFlowService{svcErr: &svcErr})

	recorder := s.post(handler, `{"flowId": "flow-1"}`)

	s.Equal(http.StatusInternalServerError, recorder.Code)

	var errResp apierror.ErrorResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &errResp))
	s.Equal(constants.ErrorUserProvisioningFailed.Code, errResp.Code)
}

func (s *FlowExecutionHandlerTestSuite) TestCompletedFlowResponse() {
	service := &scriptedFlowService{
		flowStep: model.FlowStep{
			FlowID:    "flow-1",
			Status:    constants.FlowStatusComplete,
			Assertion: "signed-assertion",
		},
	}
	handler := NewFlowExecutionHandler(service)

	recorder := s.post(handler, `{"flowId": "flow-1", "inputs": {"otp": "123456"}}`)

	s.Equal(http.StatusOK, recorder.Code)

	var response model.FlowResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal(string(constants.FlowStatusComplete), response.FlowStatus)
	s.Equal("signed-assertion", response.Assertion)
	s.Empty(response.StepID)
}
