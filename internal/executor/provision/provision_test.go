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

package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
	userconst "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
	usermodel "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/model"
)

// fakeUserService records create calls and can be told to fail.
type fakeUserService struct {
	failCreate  bool
	createCalls int
	lastRequest usermodel.CreateUserRequest
}

func (f *fakeUserService) CreateUser(request usermodel.CreateUserRequest) (*usermodel.User, error) {
	f.createCalls++
	f.lastRequest = request
	if f.failCreate {
		return nil, errors.New("user store unavailable")
	}
	return &usermodel.User{ID: "user-1"}, nil
}

func (f *fakeUserService) GetUserByID(_ string) (*usermodel.User, error) {
	return nil, userconst.ErrUserNotFound
}

func (f *fakeUserService) GetUserByUsername(_ string) (*usermodel.User, error) {
	return nil, userconst.ErrUserNotFound
}

func (f *fakeUserService) VerifyCredential(_, _, _ string) (*usermodel.User, error) {
	return nil, userconst.ErrInvalidCredential
}

func (f *fakeUserService) DeleteUser(_ string) error {
	return nil
}

type ProvisioningExecutorTestSuite struct {
	suite.Suite
	userService *fakeUserService
	executor    *ProvisioningExecutor
}

func TestProvisioningExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(ProvisioningExecutorTestSuite))
}

func (s *ProvisioningExecutorTestSuite) SetupTest() {
	s.userService = &fakeUserService{}
	s.executor = NewProvisioningExecutor(map[string]string{
		organizationUnitProperty: "root",
	}, s.userService)
}

func (s *ProvisioningExecutorTestSuite) newNodeContext() *model.NodeContext {
	draftUser := model.NewDraftUser()
	draftUser.SetAttribute("username", "jane")
	draftUser.SetAttribute("email", "jane@example.com")
	draftUser.SetCredential(userconst.PasswordCredentialType, "secret")
	return &model.NodeContext{
		FlowID:      "flow-1",
		RuntimeData: make(map[string]string),
		DraftUser:   draftUser,
	}
}

func (s *ProvisioningExecutorTestSuite) TestProvisionsTheDraftUser() {
	ctx := s.newNodeContext()

	resp, err := s.executor.CollectAttributes(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal("user-1", resp.RuntimeData[constants.RuntimeKeyProvisionedUserID])
	s.Equal("user-1", resp.RuntimeData[constants.RuntimeKeyUserID])
	s.Equal("user-1", ctx.DraftUser.UserID)

	s.Equal(1, s.userService.createCalls)
	s.Equal("root", s.userService.lastRequest.OrganizationUnit)
	s.Equal("jane", s.userService.lastRequest.Attributes["username"])
	s.Equal("secret", s.userService.lastRequest.Credentials[userconst.PasswordCredentialType])
}

func (s *ProvisioningExecutorTestSuite) TestProvisioningIsIdempotent() {
	ctx := s.newNodeContext()
	ctx.RuntimeData[constants.RuntimeKeyProvisionedUserID] = "user-1"

	resp, err := s.executor.CollectAttributes(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Zero(s.userService.createCalls)
}

func (s *ProvisioningExecutorTestSuite) TestFailureIsFatalWithProvisioningError() {
	s.userService.failCreate = true
	ctx := s.newNodeContext()

	resp, err := s.executor.CollectAttributes(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecFailure, resp.Status)
	s.Require().NotNil(resp.Error)
	s.Equal(serviceerror.ProvisioningErrorType, resp.Error.Type)
	s.Equal(constants.ErrorUserProvisioningFailed.Code, resp.Error.Code)
}
