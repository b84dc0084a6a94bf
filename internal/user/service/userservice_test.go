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

package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/user/store"
)

// inMemoryUserStore is a test double backed by maps.
type inMemoryUserStore struct {
	users       map[string]*model.User
	usernames   map[string]string
	credentials map[string]map[string]*model.Credential
}

func newInMemoryUserStore() *inMemoryUserStore {
	return &inMemoryUserStore{
		users:       make(map[string]*model.User),
		usernames:   make(map[string]string),
		credentials: make(map[string]map[string]*model.Credential),
	}
}

func (s *inMemoryUserStore) CreateUser(user model.User, username string, credentials map[string]string) error {
	if _, exists := s.usernames[username]; exists {
		return constants.ErrDuplicateUser
	}
	s.users[user.ID] = &user
	s.usernames[username] = user.ID
	s.credentials[user.ID] = make(map[string]*model.Credential)
	for credentialType, value := range credentials {
		salt := "test-salt"
		s.credentials[user.ID][credentialType] = &model.Credential{
			CredentialType: credentialType,
			StorageType:    "hash",
			Value:          store.HashCredential(value, salt),
			Salt:           salt,
		}
	}
	return nil
}

func (s *inMemoryUserStore) GetUserByID(userID string) (*model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, constants.ErrUserNotFound
	}
	return user, nil
}

func (s *inMemoryUserStore) GetUserByUsername(username string) (*model.User, error) {
	userID, ok := s.usernames[username]
	if !ok {
		return nil, constants.ErrUserNotFound
	}
	return s.users[userID], nil
}

func (s *inMemoryUserStore) GetCredential(userID, credentialType string) (*model.Credential, error) {
	credential, ok := s.credentials[userID][credentialType]
	if !ok {
		return nil, constants.ErrInvalidCredential
	}
	return credential, nil
}

func (s *inMemoryUserStore) DeleteUser(userID string) error {
	delete(s.users, userID)
	return nil
}

type UserServiceTestSuite struct {
	suite.Suite
	service *UserService
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.service = NewUserService(newInMemoryUserStore())
}

func (s *UserServiceTestSuite) createAlice() *model.User {
	user, err := s.service.CreateUser(model.CreateUserRequest{
		OrganizationUnit: "root",
		Type:             "person",
		Attributes: map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
		},
		Credentials: map[string]string{
			constants.PasswordCredentialType: "s3cret",
		},
	})
	s.Require().NoError(err)
	return user
}

func (s *UserServiceTestSuite) TestCreateUser() {
	user := s.createAlice()
	s.NotEmpty(user.ID)
	s.Equal("root", user.OrganizationUnit)
	s.JSONEq(`{"username":"alice","email":"alice@example.com"}`, string(user.Attributes))
}

func (s *UserServiceTestSuite) TestCreateUserRequiresUsername() {
	_, err := s.service.CreateUser(model.CreateUserRequest{
		Attributes: map[string]string{"email": "alice@example.com"},
	})
	s.Error(err)
}

func (s *UserServiceTestSuite) TestCreateUserDuplicate() {
	s.createAlice()
	_, err := s.service.CreateUser(model.CreateUserRequest{
		Attributes: map[string]string{"username": "alice"},
	})
	s.ErrorIs(err, constants.ErrDuplicateUser)
}

func (s *UserServiceTestSuite) TestGetUserByUsername() {
	created := s.createAlice()

	user, err := s.service.GetUserByUsername("alice")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)

	_, err = s.service.GetUserByUsername("bob")
	s.ErrorIs(err, constants.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestVerifyCredential() {
	created := s.createAlice()

	user, err := s.service.VerifyCredential("alice", constants.PasswordCredentialType, "s3cret")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)
}

func (s *UserServiceTestSuite) TestVerifyCredentialWrongPassword() {
	s.createAlice()

	_, err := s.service.VerifyCredential("alice", constants.PasswordCredentialType, "wrong")
	s.ErrorIs(err, constants.ErrInvalidCredential)
}

func (s *UserServiceTestSuite) TestVerifyCredentialUnknownUser() {
	_, err := s.service.VerifyCredential("bob", constants.PasswordCredentialType, "s3cret")
	s.ErrorIs(err, constants.ErrUserNotFound)
}
