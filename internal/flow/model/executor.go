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

package model

import (
	"regexp"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/error/serviceerror"
)

// ExecutorResponse represents the response from an executor capability invocation.
type ExecutorResponse struct {
	Status         constants.ExecutorStatus
	RequiredData   []InputData
	FailureReason  string
	AdditionalData map[string]string
	RuntimeData    map[string]string
	Assertion      string

	// Error marks a fatal outcome that aborts the engine run, such as a
	// provisioning failure. Ordinary validation failures use Status instead.
	Error *serviceerror.ServiceError
}

// ExecutorInterface is the base interface implemented by all executors.
// Executors are stateless; per-flow state lives in the engine context and
// is handed in through the NodeContext.
type ExecutorInterface interface {
	GetName() string
	GetProperties() map[string]string
	GetDefaultInputs() []InputData
}

// AttributeCollector is implemented by executors that collect user attributes.
type AttributeCollector interface {
	CollectAttributes(ctx *NodeContext) (*ExecutorResponse, error)
}

// CredentialEnroller is implemented by executors that enroll user credentials.
type CredentialEnroller interface {
	EnrollCredential(ctx *NodeContext) (*ExecutorResponse, error)
}

// Verifier is implemented by executors that verify a claim out of band.
type Verifier interface {
	Verify(ctx *NodeContext) (*ExecutorResponse, error)
}

// Authenticator is implemented by executors that authenticate the user.
type Authenticator interface {
	Authenticate(ctx *NodeContext) (*ExecutorResponse, error)
}

// ExecutorConfig holds the executor configuration attached to a node. The
// executor instance is resolved once when the graph is loaded.
type ExecutorConfig struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
	Executor   ExecutorInterface `json:"-"`
}

// Executor provides the shared implementation for executors.
type Executor struct {
	name          string
	properties    map[string]string
	defaultInputs []InputData
}

// NewExecutor creates the shared executor base with the given details.
func NewExecutor(name string, defaultInputs []InputData, properties map[string]string) Executor {
	if properties == nil {
		properties = make(map[string]string)
	}
	return Executor{
		name:          name,
		properties:    properties,
		defaultInputs: defaultInputs,
	}
}

// GetName returns the name of the executor.
func (e *Executor) GetName() string {
	return e.name
}

// GetProperties returns the configured properties of the executor.
func (e *Executor) GetProperties() map[string]string {
	return e.properties
}

// GetDefaultInputs returns the inputs the executor requires by default.
func (e *Executor) GetDefaultInputs() []InputData {
	return e.defaultInputs
}

// CheckInputData returns the declared inputs that have not been supplied yet.
// Only a missing required input makes the check fail: when every required
// input is present the result is empty, but while the executor has to pause
// anyway the missing optional inputs are declared alongside so the client can
// render and supply them. Node level input declarations take precedence over
// the executor defaults with the same name.
func (e *Executor) CheckInputData(ctx *NodeContext) []InputData {
	declared := mergeInputData(e.defaultInputs, ctx.NodeInputData)
	missing, requiredMissing := missingInputData(declared, ctx.UserInputData)
	if !requiredMissing {
		return nil
	}
	return missing
}

// missingInputData returns the declared inputs absent from the supplied values
// and whether any of them is required.
func missingInputData(declared []InputData, supplied map[string]string) ([]InputData, bool) {
	missing := make([]InputData, 0)
	requiredMissing := false
	for _, input := range declared {
		if value, ok := supplied[input.Name]; ok && value != "" {
			continue
		}
		missing = append(missing, input)
		if input.Required {
			requiredMissing = true
		}
	}
	return missing, requiredMissing
}

// mergeInputData merges two input declarations, with the override list taking
// precedence for inputs with the same name.
func mergeInputData(base, override []InputData) []InputData {
	merged := make([]InputData, 0, len(base)+len(override))
	overridden := make(map[string]bool, len(override))
	for _, input := range override {
		overridden[input.Name] = true
	}
	for _, input := range base {
		if !overridden[input.Name] {
			merged = append(merged, input)
		}
	}
	merged = append(merged, override...)
	return merged
}

// ValidateInputValue checks a supplied value against the declared requirement.
func ValidateInputValue(input InputData, value string) bool {
	if value == "" {
		return !input.Required
	}
	if input.Regex != "" {
		matched, err := regexp.MatchString(input.Regex, value)
		if err != nil || !matched {
			return false
		}
	}
	if len(input.Options) > 0 {
		for _, option := range input.Options {
			if option == value {
				return true
			}
		}
		return false
	}
	return true
}
