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

// Package model defines the structures for user management.
package model

import "encoding/json"

// User represents a provisioned user account.
type User struct {
	ID               string          `json:"id"`
	OrganizationUnit string          `json:"organizationUnit,omitempty"`
	Type             string          `json:"type,omitempty"`
	Attributes       json.RawMessage `json:"attributes,omitempty"`
}

// CreateUserRequest holds the data needed to provision a new user account.
type CreateUserRequest struct {
	OrganizationUnit string
	Type             string
	Attributes       map[string]string
	Credentials      map[string]string
}

// Credential represents a stored user credential.
type Credential struct {
	CredentialType string `json:"credentialType"`
	StorageType    string `json:"storageType"`
	Value          string `json:"value"`
	Salt           string `json:"salt"`
}
