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

// Package basicauth provides the executor for username and password authentication.
package basicauth

import (
	"errors"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	userconst "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
	userservice "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/service"
)

// ExecutorName is the registered name of the basic auth executor.
const ExecutorName = "BasicAuthExecutor"

const (
	usernameInputName = "username"
	passwordInputName = "password"
)

// BasicAuthExecutor authenticates the user with a username and password
// against the user store.
type BasicAuthExecutor struct {
	model.Executor
	userService userservice.UserServiceInterface
}

var _ model.Authenticator = (*BasicAuthExecutor)(nil)

// NewBasicAuthExecutor creates a new basic auth executor backed by the given user service.
func NewBasicAuthExecutor(properties map[string]string,
	userService userservice.UserServiceInterface) *BasicAuthExecutor {
	defaultInputs := []model.InputData{
		{
			Name:     usernameInputName,
			Type:     "string",
			Required: true,
		},
		{
			Name:     passwordInputName,
			Type:     "string",
			Required: true,
		},
	}
	return &BasicAuthExecutor{
		Executor:    model.NewExecutor(ExecutorName, defaultInputs, properties),
		userService: userService,
	}
}

// Authenticate pauses until the credentials are supplied, then verifies them
// against the user store.
func (e *BasicAuthExecutor) Authenticate(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "BasicAuthExecutor"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &model.ExecutorResponse{
			Status:       constants.ExecAuthenticationRequired,
			RequiredData: missing,
		}, nil
	}

	username := ctx.UserInputData[usernameInputName]
	password := ctx.UserInputData[passwordInputName]

	if ctx.FlowType == constants.FlowTypeRegistration {
		return e.identifyForRegistration(ctx, logger, username, password)
	}

	user, err := e.userService.VerifyCredential(username, userconst.PasswordCredentialType, password)
	if err != nil {
		logger.Debug("Credential verification failed", log.String("username", log.MaskString(username)))
		return &model.ExecutorResponse{
			Status:        constants.ExecFailure,
			FailureReason: "Invalid credentials provided",
		}, nil
	}

	ctx.DraftUser.UserID = user.ID
	ctx.DraftUser.IsAuthenticated = true

	logger.Debug("User authenticated", log.String("userID", user.ID))
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
		RuntimeData: map[string]string{
			constants.RuntimeKeyUserID: user.ID,
		},
	}, nil
}

// identifyForRegistration handles the executor in registration flows. There is
// no stored user to verify against yet, so the executor only checks that the
// username is still free, then stages the username and password on the draft
// user for provisioning. An existing user with the same username fails the flow.
func (e *BasicAuthExecutor) identifyForRegistration(ctx *model.NodeContext, logger *log.Logger,
	username, password string) (*model.ExecutorResponse, error) {
	_, err := e.userService.GetUserByUsername(username)
	if err == nil {
		logger.Debug("User already exists for the username",
			log.String("username", log.MaskString(username)))
		return &model.ExecutorResponse{
			Status:        constants.ExecFailure,
			FailureReason: "User already exists with the provided username",
		}, nil
	}
	if !errors.Is(err, userconst.ErrUserNotFound) {
		return nil, err
	}

	logger.Debug("Username is available, continuing the registration flow",
		log.String("username", log.MaskString(username)))

	ctx.DraftUser.SetAttribute(userconst.UsernameAttribute, username)
	ctx.DraftUser.SetCredential(userconst.PasswordCredentialType, password)
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
	}, nil
}
