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

// Package credentialenroll provides the executor for enrolling user credentials.
package credentialenroll

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	userconst "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
)

// ExecutorName is the registered name of the credential enroll executor.
const ExecutorName = "CredentialEnrollExecutor"

// passwordInputName is the input under which the new credential is supplied.
const passwordInputName = "password"

// CredentialEnrollExecutor captures a new password credential for the draft
// user. The raw value is held on the draft user until provisioning hashes and
// stores it.
type CredentialEnrollExecutor struct {
	model.Executor
}

var _ model.CredentialEnroller = (*CredentialEnrollExecutor)(nil)

// NewCredentialEnrollExecutor creates a new credential enroll executor.
func NewCredentialEnrollExecutor(properties map[string]string) *CredentialEnrollExecutor {
	defaultInputs := []model.InputData{
		{
			Name:     passwordInputName,
			Type:     "string",
			Required: true,
		},
	}
	return &CredentialEnrollExecutor{
		Executor: model.NewExecutor(ExecutorName, defaultInputs, properties),
	}
}

// EnrollCredential pauses until the credential value is supplied, then records
// it on the draft user.
func (e *CredentialEnrollExecutor) EnrollCredential(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &model.ExecutorResponse{
			Status:       constants.ExecCredentialEnrollmentRequired,
			RequiredData: missing,
		}, nil
	}

	ctx.DraftUser.SetCredential(userconst.PasswordCredentialType, ctx.UserInputData[passwordInputName])
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
	}, nil
}
