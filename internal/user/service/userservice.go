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

// Package service provides the user management service.
package service

import (
	"encoding/json"
	"fmt"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/utils"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/store"
)

// UserServiceInterface defines the operations for managing users.
type UserServiceInterface interface {
	CreateUser(request model.CreateUserRequest) (*model.User, error)
	GetUserByID(userID string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	VerifyCredential(username, credentialType, value string) (*model.User, error)
	DeleteUser(userID string) error
}

// UserService manages user accounts on top of the user store.
type UserService struct {
	userStore store.UserStoreInterface
}

// NewUserService creates a user service backed by the given store.
func NewUserService(userStore store.UserStoreInterface) *UserService {
	return &UserService{userStore: userStore}
}

// CreateUser provisions a new user account with the given attributes and credentials.
func (s *UserService) CreateUser(request model.CreateUserRequest) (*model.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserService"))

	username := request.Attributes[constants.UsernameAttribute]
	if username == "" {
		return nil, fmt.Errorf("attribute %q is required to create a user", constants.UsernameAttribute)
	}

	attributes, err := json.Marshal(request.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize user attributes: %w", err)
	}

	user := model.User{
		ID:               utils.GenerateUUID(),
		OrganizationUnit: request.OrganizationUnit,
		Type:             request.Type,
		Attributes:       attributes,
	}
	if err := s.userStore.CreateUser(user, username, request.Credentials); err != nil {
		return nil, err
	}

	logger.Debug("Created user", log.String("userID", user.ID))
	return &user, nil
}

// GetUserByID retrieves a user by its unique identifier.
func (s *UserService) GetUserByID(userID string) (*model.User, error) {
	return s.userStore.GetUserByID(userID)
}

// GetUserByUsername retrieves a user by its unique username.
func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	return s.userStore.GetUserByUsername(username)
}

// VerifyCredential checks the given credential value against the stored hash
// and returns the matching user on success.
func (s *UserService) VerifyCredential(username, credentialType, value string) (*model.User, error) {
	user, err := s.userStore.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	credential, err := s.userStore.GetCredential(user.ID, credentialType)
	if err != nil {
		return nil, err
	}
	if !store.VerifyHash(value, credential.Salt, credential.Value) {
		return nil, constants.ErrInvalidCredential
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(userID string) error {
	return s.userStore.DeleteUser(userID)
}
