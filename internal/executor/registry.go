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

// Package executor provides the registry resolving executor names in graph
// definitions to executor instances.
package executor

import (
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/attributecollect"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/authassert"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/basicauth"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/credentialenroll"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/emailotp"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/executor/provision"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/jwt"
	userservice "github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/service"
)

// executorFactory creates an executor instance with the given properties.
type executorFactory func(properties map[string]string) model.ExecutorInterface

// Registry resolves executor names from graph definitions to instances. The
// backing services are injected once and shared by every executor the
// registry creates.
type Registry struct {
	factories map[string]executorFactory
}

// NewRegistry creates a registry with all built-in executors registered.
func NewRegistry(userService userservice.UserServiceInterface, jwtService jwt.JWTServiceInterface) *Registry {
	return &Registry{
		factories: map[string]executorFactory{
			attributecollect.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return attributecollect.NewAttributeCollectExecutor(properties)
			},
			credentialenroll.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return credentialenroll.NewCredentialEnrollExecutor(properties)
			},
			emailotp.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return emailotp.NewEmailOTPExecutor(properties)
			},
			basicauth.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return basicauth.NewBasicAuthExecutor(properties, userService)
			},
			provision.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return provision.NewProvisioningExecutor(properties, userService)
			},
			authassert.ExecutorName: func(properties map[string]string) model.ExecutorInterface {
				return authassert.NewAuthAssertExecutor(properties, jwtService)
			},
		},
	}
}

// Resolve returns an executor instance for the given name and properties.
func (r *Registry) Resolve(name string, properties map[string]string) (model.ExecutorInterface, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown executor: %s", name)
	}
	return factory(properties), nil
}
