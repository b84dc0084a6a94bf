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

package store

import dbmodel "github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/database/model"

var (
	// queryCreateUser inserts a new user record.
	queryCreateUser = dbmodel.DBQuery{
		ID:    "USR-00001",
		Query: "INSERT INTO \"USER\" (USER_ID, OU, TYPE, USERNAME, ATTRIBUTES) VALUES ($1, $2, $3, $4, $5)",
	}

	// queryGetUserByUserID retrieves a user by its unique identifier.
	queryGetUserByUserID = dbmodel.DBQuery{
		ID:    "USR-00002",
		Query: "SELECT USER_ID, OU, TYPE, ATTRIBUTES FROM \"USER\" WHERE USER_ID = $1",
	}

	// queryGetUserByUsername retrieves a user by its unique username.
	queryGetUserByUsername = dbmodel.DBQuery{
		ID:    "USR-00003",
		Query: "SELECT USER_ID, OU, TYPE, ATTRIBUTES FROM \"USER\" WHERE USERNAME = $1",
	}

	// queryCreateCredential inserts a credential for a user.
	queryCreateCredential = dbmodel.DBQuery{
		ID:    "USR-00004",
		Query: "INSERT INTO USER_CREDENTIAL (USER_ID, CREDENTIAL_TYPE, CREDENTIAL_VALUE, SALT) " +
			"VALUES ($1, $2, $3, $4)",
	}

	// queryGetCredential retrieves a credential of the given type for a user.
	queryGetCredential = dbmodel.DBQuery{
		ID:    "USR-00005",
		Query: "SELECT CREDENTIAL_VALUE, SALT FROM USER_CREDENTIAL WHERE USER_ID = $1 AND CREDENTIAL_TYPE = $2",
	}

	// queryDeleteUser removes a user and relies on cascade to remove credentials.
	queryDeleteUser = dbmodel.DBQuery{
		ID:    "USR-00006",
		Query: "DELETE FROM \"USER\" WHERE USER_ID = $1",
	}
)
