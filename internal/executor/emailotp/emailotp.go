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

// Package emailotp provides the executor for email OTP based verification.
package emailotp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// ExecutorName is the registered name of the email OTP executor.
const ExecutorName = "EmailOTPExecutor"

const (
	emailInputName = "email"
	otpInputName   = "otp"

	// otpValueRuntimeKey holds the generated OTP between requests.
	otpValueRuntimeKey = "emailOTPValue"

	otpLength = 6
)

// EmailOTPExecutor verifies ownership of an email address with a one time
// passcode. It declares its own email requirement, so it can collect the
// address itself or pick it up when a prompt node collected it up front.
type EmailOTPExecutor struct {
	model.Executor
}

var (
	_ model.AttributeCollector = (*EmailOTPExecutor)(nil)
	_ model.Verifier           = (*EmailOTPExecutor)(nil)
)

// NewEmailOTPExecutor creates a new email OTP executor.
func NewEmailOTPExecutor(properties map[string]string) *EmailOTPExecutor {
	defaultInputs := []model.InputData{
		{
			Name:     emailInputName,
			Type:     "string",
			Required: true,
		},
	}
	return &EmailOTPExecutor{
		Executor: model.NewExecutor(ExecutorName, defaultInputs, properties),
	}
}

// CollectAttributes pauses until the email address is supplied and records it
// on the draft user.
func (e *EmailOTPExecutor) CollectAttributes(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &model.ExecutorResponse{
			Status:       constants.ExecAttributesRequired,
			RequiredData: missing,
		}, nil
	}

	ctx.DraftUser.SetAttribute(emailInputName, ctx.UserInputData[emailInputName])
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
	}, nil
}

// Verify sends an OTP to the collected email address on the first pass and
// checks the supplied value on the next.
func (e *EmailOTPExecutor) Verify(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EmailOTPExecutor"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	suppliedOTP := ctx.UserInputData[otpInputName]
	expectedOTP := ctx.RuntimeData[otpValueRuntimeKey]

	otpRequirement := []model.InputData{
		{
			Name:     otpInputName,
			Type:     "string",
			Required: true,
		},
	}

	if expectedOTP == "" {
		otp, err := generateOTP(otpLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate OTP: %w", err)
		}

		email := ctx.DraftUser.Attributes[emailInputName]
		// TODO: deliver the OTP through the notification sender once an
		// email provider is wired in. Until then the OTP only lands in the
		// debug log.
		logger.Debug("Generated OTP for email verification",
			log.String("email", log.MaskString(email)), log.String("otp", log.MaskString(otp)))

		return &model.ExecutorResponse{
			Status:       constants.ExecVerificationRequired,
			RequiredData: otpRequirement,
			RuntimeData: map[string]string{
				otpValueRuntimeKey: otp,
			},
		}, nil
	}

	// A request without the OTP field must not invalidate the code that was
	// already delivered; re-prompt for the outstanding one.
	if suppliedOTP == "" {
		return &model.ExecutorResponse{
			Status:       constants.ExecVerificationRequired,
			RequiredData: otpRequirement,
		}, nil
	}

	if suppliedOTP != expectedOTP {
		return &model.ExecutorResponse{
			Status:        constants.ExecFailure,
			FailureReason: "Invalid OTP provided",
		}, nil
	}

	ctx.DraftUser.AddVerifiedMethod(ExecutorName)
	logger.Debug("Email address verified")
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
	}, nil
}

// generateOTP returns a random numeric passcode of the given length.
func generateOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
