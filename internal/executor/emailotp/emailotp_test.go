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

package emailotp

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
)

type EmailOTPExecutorTestSuite struct {
	suite.Suite
	executor *EmailOTPExecutor
}

func TestEmailOTPExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(EmailOTPExecutorTestSuite))
}

func (s *EmailOTPExecutorTestSuite) SetupTest() {
	s.executor = NewEmailOTPExecutor(nil)
}

func (s *EmailOTPExecutorTestSuite) newNodeContext(inputs map[string]string) *model.NodeContext {
	return &model.NodeContext{
		FlowID:        "flow-1",
		UserInputData: inputs,
		RuntimeData:   make(map[string]string),
		DraftUser:     model.NewDraftUser(),
	}
}

func (s *EmailOTPExecutorTestSuite) TestCollectsTheEmailAddress() {
	ctx := s.newNodeContext(nil)

	resp, err := s.executor.CollectAttributes(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecAttributesRequired, resp.Status)
	s.Require().Len(resp.RequiredData, 1)
	s.Equal("email", resp.RequiredData[0].Name)

	ctx = s.newNodeContext(map[string]string{"email": "jane@example.com"})
	resp, err = s.executor.CollectAttributes(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Equal("jane@example.com", ctx.DraftUser.Attributes["email"])
}

func (s *EmailOTPExecutorTestSuite) TestSendsOTPOnFirstVerifyPass() {
	ctx := s.newNodeContext(nil)
	ctx.DraftUser.SetAttribute("email", "jane@example.com")

	resp, err := s.executor.Verify(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecVerificationRequired, resp.Status)
	s.Require().Len(resp.RequiredData, 1)
	s.Equal("otp", resp.RequiredData[0].Name)
	s.Len(resp.RuntimeData[otpValueRuntimeKey], otpLength)
}

func (s *EmailOTPExecutorTestSuite) TestOutstandingOTPSurvivesAnEmptyContinue() {
	ctx := s.newNodeContext(nil)
	ctx.RuntimeData[otpValueRuntimeKey] = "123456"

	resp, err := s.executor.Verify(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecVerificationRequired, resp.Status)
	s.Require().Len(resp.RequiredData, 1)
	s.Equal("otp", resp.RequiredData[0].Name)

	// The delivered code is not regenerated and still verifies.
	s.Empty(resp.RuntimeData)

	ctx = s.newNodeContext(map[string]string{"otp": "123456"})
	ctx.RuntimeData[otpValueRuntimeKey] = "123456"
	resp, err = s.executor.Verify(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
}

func (s *EmailOTPExecutorTestSuite) TestVerifiesTheSuppliedOTP() {
	ctx := s.newNodeContext(map[string]string{"otp": "123456"})
	ctx.RuntimeData[otpValueRuntimeKey] = "123456"

	resp, err := s.executor.Verify(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecActionComplete, resp.Status)
	s.Contains(ctx.DraftUser.VerifiedMethods, ExecutorName)
}

func (s *EmailOTPExecutorTestSuite) TestRejectsAWrongOTP() {
	ctx := s.newNodeContext(map[string]string{"otp": "000000"})
	ctx.RuntimeData[otpValueRuntimeKey] = "123456"

	resp, err := s.executor.Verify(ctx)
	s.Require().NoError(err)
	s.Equal(constants.ExecFailure, resp.Status)
	s.Equal("Invalid OTP provided", resp.FailureReason)
	s.Empty(ctx.DraftUser.VerifiedMethods)
}

func (s *EmailOTPExecutorTestSuite) TestGeneratedOTPIsNumeric() {
	otp, err := generateOTP(otpLength)
	s.Require().NoError(err)
	s.Len(otp, otpLength)
	for _, c := range otp {
		s.True(c >= '0' && c <= '9')
	}
}
