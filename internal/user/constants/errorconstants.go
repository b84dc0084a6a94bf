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

// Package constants defines the constants used by the user service.
package constants

import "errors"

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a user with the same username already exists.
var ErrDuplicateUser = errors.New("user already exists")

// ErrInvalidCredential is returned when credential verification fails.
var ErrInvalidCredential = errors.New("invalid credential")

// UsernameAttribute is the attribute key holding the unique username of a user.
const UsernameAttribute = "username"

// PasswordCredentialType is the credential type for password credentials.
const PasswordCredentialType = "password"
