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

// Package provision provides the executor that creates the user account from
// the draft user at the end of a registration flow.
package provision

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	usermodel "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/model"
	userservice "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/service"
)

// ExecutorName is the registered name of the provisioning executor.
const ExecutorName = "ProvisioningExecutor"

// defaultUserType is the type assigned to users created through a flow.
const defaultUserType = "person"

// organizationUnitProperty configures the organization unit new users are created in.
const organizationUnitProperty = "organizationUnit"

// ProvisioningExecutor creates the user account from the accumulated draft
// user. A provisioned user ID in the runtime data marks the account as created
// and makes re-entry a no-op.
type ProvisioningExecutor struct {
	model.Executor
	userService userservice.UserServiceInterface
}

var _ model.AttributeCollector = (*ProvisioningExecutor)(nil)

// NewProvisioningExecutor creates a new provisioning executor backed by the given user service.
func NewProvisioningExecutor(properties map[string]string,
	userService userservice.UserServiceInterface) *ProvisioningExecutor {
	return &ProvisioningExecutor{
		Executor:    model.NewExecutor(ExecutorName, nil, properties),
		userService: userService,
	}
}

// CollectAttributes provisions the user account from the draft user. A failure
// is fatal for the engine run but keeps the flow context so the client can
// retry.
func (e *ProvisioningExecutor) CollectAttributes(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ProvisioningExecutor"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	if provisionedUserID := ctx.RuntimeData[constants.RuntimeKeyProvisionedUserID]; provisionedUserID != "" {
		logger.Debug("User already provisioned for the flow", log.String("userID", provisionedUserID))
		return &model.ExecutorResponse{
			Status: constants.ExecActionComplete,
		}, nil
	}

	request := usermodel.CreateUserRequest{
		OrganizationUnit: e.GetProperties()[organizationUnitProperty],
		Type:             defaultUserType,
		Attributes:       ctx.DraftUser.Attributes,
		Credentials:      ctx.DraftUser.Credentials,
	}

	user, err := e.userService.CreateUser(request)
	if err != nil {
		logger.Error("Failed to provision user", log.Error(err))
		svcErr := constants.ErrorUserProvisioningFailed
		svcErr.ErrorDescription = "Error while creating the user account: " + err.Error()
		return &model.ExecutorResponse{
			Status: constants.ExecFailure,
			Error:  &svcErr,
		}, nil
	}

	ctx.DraftUser.UserID = user.ID

	logger.Debug("User provisioned", log.String("userID", user.ID))
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
		RuntimeData: map[string]string{
			constants.RuntimeKeyProvisionedUserID: user.ID,
			constants.RuntimeKeyUserID:            user.ID,
		},
	}, nil
}
