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

package credentialenroll

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	userconst "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
)

type CredentialEnrollExecutorTestSuite struct {
	suite.Suite
	executor *CredentialEnrollExecutor
}

func TestCredentialEnrollExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(CredentialEnrollExecutorTestSuite))
}

func (s *CredentialEnrollExecutorTestSuite) SetupTest() {
	s.executor = NewCredentialEnrollExecutor(nil)
}

func (s *CredentialEnrollExecutorTestSuite) newNodeContext(inputs map[string]string) *model.NodeContext {
	return &model.NodeContext{
		FlowID:        "flow-1",
		UserInputData: inputs,
		RuntimeData:   make(map[string]string),
		DraftUser:     model.NewDraftUser(),
	}
}

func (s *CredentialEnrollExecutorTestSuite) TestPausesForTheCredential() {
	resp, err := s.executor.EnrollCredential(s.newNodeContext(nil))
	s.Require().NoError(err)
	s.Equal(constants.ExecCredentialEnrollmentRequired, resp.Status)
	s.Require().Len(resp.RequiredData, 1)
	s.Equal("password", resp.RequiredData[0].Name)
}

func (s *CredentialEnrollExecutorTestSuite) TestRecordsTheCredential() {
	ctx := s.newNodeContext(map[string]string{"password": "secret"})

	resp, err := s.executor.EnrollCredential(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal("secret", ctx.DraftUser.Credentials[userconst.PasswordCredentialType])
}
