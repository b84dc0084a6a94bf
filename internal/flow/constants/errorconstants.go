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

package constants

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/apierror"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// Client error structs

var APIErrorFlowRequestJSONDecodeError = apierror.ErrorResponse{
	Code:        "FES-60001",
	Message:     "Invalid request payload",
	Description: "Failed to decode request payload",
}

var ErrorInvalidFlowType = serviceerror.ServiceError{
	Code:             "FES-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid flow type provided in the request",
}

var ErrorInvalidAppID = serviceerror.ServiceError{
	Code:             "FES-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid app ID provided in the request",
}

var ErrorInvalidFlowID = serviceerror.ServiceError{
	Code:             "FES-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid flow ID provided in the request",
}

var ErrorInvalidUserInput = serviceerror.ServiceError{
	Code:             "FES-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "One or more inputs do not satisfy the declared requirements",
}

var ErrorInvalidActionSelection = serviceerror.ServiceError{
	Code:             "FES-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "The selected action is not a valid option for the current step",
}

var ErrorMultipleAuthenticatorsEngaged = serviceerror.ServiceError{
	Code:             "FES-60007",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Only one authenticator can be engaged for the current step",
}

var ErrorAuthFlowNotConfiguredForApplication = serviceerror.ServiceError{
	Code:             "FES-60008",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Authentication flow is not configured for the application",
}

var ErrorRegisFlowNotConfiguredForApplication = serviceerror.ServiceError{
	Code:             "FES-60009",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Registration flow is not configured for the application",
}

var ErrorRegistrationFlowDisabled = serviceerror.ServiceError{
	Code:             "FES-60010",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Registration flow is disabled for the application",
}

// Server error structs

var ErrorFlowGraphNotInitialized = serviceerror.ServiceError{
	Code:             "FES-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Flow graph is not initialized or is nil",
}

var ErrorFlowGraphNotFound = serviceerror.ServiceError{
	Code:             "FES-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Flow graph not found for the graph ID",
}

var ErrorStartNodeNotFoundInGraph = serviceerror.ServiceError{
	Code:             "FES-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Start node not found in the flow graph",
}

var ErrorNodeResponseStatusNotFound = serviceerror.ServiceError{
	Code:             "FES-65004",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Node response status not found in the flow graph",
}

var ErrorMovingToNextNode = serviceerror.ServiceError{
	Code:             "FES-65005",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while moving to the next node",
}

var ErrorResolvingStepForPrompt = serviceerror.ServiceError{
	Code:             "FES-65006",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while resolving step for prompt",
}

var ErrorUnsupportedNodeResponseType = serviceerror.ServiceError{
	Code:             "FES-65007",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Unsupported response type returned from the node",
}

var ErrorUnsupportedNodeResponseStatus = serviceerror.ServiceError{
	Code:             "FES-65008",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Unsupported response status returned from the node",
}

var ErrorNodeExecutorNotFound = serviceerror.ServiceError{
	Code:             "FES-65009",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "An executor not found for the node",
}

var ErrorNodeExecutorExecError = serviceerror.ServiceError{
	Code:             "FES-65010",
	Type:             serviceerror.ServerErrorType,
	Error:            "Executor Execution Error",
	ErrorDescription: "Error executing the node executor",
}

var ErrorNilResponseFromExecutor = serviceerror.ServiceError{
	Code:             "FES-65011",
	Type:             serviceerror.ServerErrorType,
	Error:            "Executor Response Error",
	ErrorDescription: "Received nil response from the executor",
}

var ErrorUpdatingContextInStore = serviceerror.ServiceError{
	Code:             "FES-65012",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while updating the flow context in the store",
}

var ErrorFlowContextConversionFailed = serviceerror.ServiceError{
	Code:             "FES-65013",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while converting the stored flow context",
}

var ErrorCurrentNodeNotFoundInGraph = serviceerror.ServiceError{
	Code:             "FES-65014",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Current node of the flow not found in the flow graph",
}

// Provisioning error structs

var ErrorUserProvisioningFailed = serviceerror.ServiceError{
	Code:             "FES-65101",
	Type:             serviceerror.ProvisioningErrorType,
	Error:            "User provisioning failed",
	ErrorDescription: "Error while creating the user account for the flow",
}
