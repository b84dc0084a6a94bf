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

// Package store provides persistence for user accounts and credentials.
package store

import (
	"encoding/json"
	"fmt"

	dbmodel "github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/provider"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/model"
)

// UserStoreInterface defines the persistence operations for users.
type UserStoreInterface interface {
	CreateUser(user model.User, username string, credentials map[string]string) error
	GetUserByID(userID string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetCredential(userID, credentialType string) (*model.Credential, error)
	DeleteUser(userID string) error
}

// UserStore persists users in the identity database.
type UserStore struct {
	dbProvider provider.DBProviderInterface
}

// NewUserStore creates a user store backed by the given database provider.
func NewUserStore(dbProvider provider.DBProviderInterface) *UserStore {
	return &UserStore{dbProvider: dbProvider}
}

// CreateUser inserts the user together with hashed credentials.
func (s *UserStore) CreateUser(user model.User, username string, credentials map[string]string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	if existing, err := s.getUser(queryGetUserByUsername, username); err != nil {
		return err
	} else if existing != nil {
		return constants.ErrDuplicateUser
	}

	attributes := user.Attributes
	if attributes == nil {
		attributes = json.RawMessage("{}")
	}
	if _, err := dbClient.Execute(queryCreateUser,
		user.ID, user.OrganizationUnit, user.Type, username, string(attributes)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	for credentialType, value := range credentials {
		salt, err := generateSalt()
		if err != nil {
			return fmt.Errorf("failed to generate credential salt: %w", err)
		}
		hashed := HashCredential(value, salt)
		if _, err := dbClient.Execute(queryCreateCredential, user.ID, credentialType, hashed, salt); err != nil {
			return fmt.Errorf("failed to store credential: %w", err)
		}
	}

	return nil
}

// GetUserByID retrieves a user by its unique identifier.
func (s *UserStore) GetUserByID(userID string) (*model.User, error) {
	user, err := s.getUser(queryGetUserByUserID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, constants.ErrUserNotFound
	}
	return user, nil
}

// GetUserByUsername retrieves a user by its unique username.
func (s *UserStore) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.getUser(queryGetUserByUsername, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, constants.ErrUserNotFound
	}
	return user, nil
}

// GetCredential retrieves a stored credential of the given type for a user.
func (s *UserStore) GetCredential(userID, credentialType string) (*model.Credential, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	results, err := dbClient.Query(queryGetCredential, userID, credentialType)
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrInvalidCredential
	}

	row := results[0]
	return &model.Credential{
		CredentialType: credentialType,
		StorageType:    "hash",
		Value:          asString(row["credential_value"]),
		Salt:           asString(row["salt"]),
	}, nil
}

// DeleteUser removes a user and its credentials.
func (s *UserStore) DeleteUser(userID string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	if _, err := dbClient.Execute(queryDeleteUser, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// getUser runs a single-user query and returns nil without error when no row matches.
func (s *UserStore) getUser(query dbmodel.DBQuery, arg string) (*model.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	results, err := dbClient.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	user := &model.User{
		ID:               asString(row["user_id"]),
		OrganizationUnit: asString(row["ou"]),
		Type:             asString(row["type"]),
	}
	if attrs := asString(row["attributes"]); attrs != "" {
		user.Attributes = json.RawMessage(attrs)
	}
	return user, nil
}

func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}
