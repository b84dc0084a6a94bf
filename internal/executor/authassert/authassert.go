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

// Package authassert provides the executor that issues the signed completion
// assertion at the end of a flow.
package authassert

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/jwt"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	userconst "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
)

// ExecutorName is the registered name of the auth assert executor.
const ExecutorName = "AuthAssertExecutor"

// AuthAssertExecutor issues the signed JWT assertion that attests the flow
// completed and which methods authenticated the user. A signing failure does
// not fail the flow; the flow completes without an assertion.
type AuthAssertExecutor struct {
	model.Executor
	jwtService jwt.JWTServiceInterface
}

var _ model.AttributeCollector = (*AuthAssertExecutor)(nil)

// NewAuthAssertExecutor creates a new auth assert executor backed by the given JWT service.
func NewAuthAssertExecutor(properties map[string]string,
	jwtService jwt.JWTServiceInterface) *AuthAssertExecutor {
	return &AuthAssertExecutor{
		Executor:   model.NewExecutor(ExecutorName, nil, properties),
		jwtService: jwtService,
	}
}

// CollectAttributes issues the completion assertion for the flow's user.
func (e *AuthAssertExecutor) CollectAttributes(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthAssertExecutor"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	userID := ctx.DraftUser.UserID
	if userID == "" {
		userID = ctx.RuntimeData[constants.RuntimeKeyUserID]
	}

	customClaims := map[string]interface{}{
		"userId": userID,
		"flowId": ctx.FlowID,
		"amr":    ctx.AuthenticatedMethods,
	}
	if username := ctx.DraftUser.Attributes[userconst.UsernameAttribute]; username != "" {
		customClaims[userconst.UsernameAttribute] = username
	}

	assertion, err := e.jwtService.GenerateJWT(userID, ctx.AppID, customClaims)
	if err != nil {
		logger.Warn("Failed to sign the completion assertion; completing without it", log.Error(err))
		return &model.ExecutorResponse{
			Status: constants.ExecActionComplete,
		}, nil
	}

	return &model.ExecutorResponse{
		Status:    constants.ExecActionComplete,
		Assertion: assertion,
	}, nil
}
